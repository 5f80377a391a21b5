// Package blob persists customer images in public object storage.
//
// Two backends are supported: any S3-compatible bucket (AWS S3, Cloudflare R2, MinIO)
// and Supabase Storage. Both return a public URL for every object written.
package blob

import (
	"context"
	"errors"
	"fmt"
)

const (
	ProviderS3       = "s3"
	ProviderSupabase = "supabase"
)

// ErrNotConfigured is returned by Open when no storage credential is set.
var ErrNotConfigured = errors.New("blob storage not configured")

// Object is a stored image and the URL it is served from.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Store writes publicly readable objects.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
}

type Config struct {
	Provider string
	// Token is the read/write credential: "<accessKeyID>:<secretAccessKey>" for s3,
	// the service role key for supabase.
	Token         string
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
	SupabaseURL   string
}

// Open builds the store selected by cfg.Provider.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Token == "" {
		return nil, ErrNotConfigured
	}

	switch cfg.Provider {
	case "", ProviderS3:
		return NewS3Store(ctx, cfg)
	case ProviderSupabase:
		return NewSupabaseStore(cfg)
	default:
		return nil, fmt.Errorf("unknown blob provider %q", cfg.Provider)
	}
}
