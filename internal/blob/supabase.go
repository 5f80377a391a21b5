package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	supabasestorage "github.com/supabase-community/storage-go"
)

type SupabaseStore struct {
	client  *supabasestorage.Client
	bucket  string
	baseURL string
}

func NewSupabaseStore(cfg Config) (*SupabaseStore, error) {
	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required for the supabase blob provider")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("supabase bucket is required")
	}

	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	client := supabasestorage.NewClient(baseURL+"/storage/v1", cfg.Token, nil)

	return &SupabaseStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Put ignores ctx: the storage client has no context support.
func (s *SupabaseStore) Put(_ context.Context, key string, data []byte, contentType string) (*Object, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), supabasestorage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	return &Object{
		Key:         key,
		URL:         s.publicURL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (s *SupabaseStore) publicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}
