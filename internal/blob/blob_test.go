package blob

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NotConfigured(t *testing.T) {
	_, err := Open(context.Background(), Config{Provider: ProviderS3})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpen_UnknownProvider(t *testing.T) {
	_, err := Open(context.Background(), Config{Provider: "ftp", Token: "x"})
	assert.ErrorContains(t, err, "unknown blob provider")
}

func TestOpen_S3RequiresKeyPair(t *testing.T) {
	_, err := Open(context.Background(), Config{Provider: ProviderS3, Token: "no-colon", Bucket: "b"})
	assert.Error(t, err)
}

func TestOpen_Supabase(t *testing.T) {
	store, err := Open(context.Background(), Config{
		Provider:    ProviderSupabase,
		Token:       "service-role",
		Bucket:      "engravings",
		SupabaseURL: "https://abc.supabase.co/",
	})
	require.NoError(t, err)

	sb, ok := store.(*SupabaseStore)
	require.True(t, ok)
	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/object/public/engravings/uploads/original-1-abc.png",
		sb.publicURL("uploads/original-1-abc.png"))
}

func TestS3Store_PublicURL(t *testing.T) {
	tests := []struct {
		name  string
		store S3Store
		want  string
	}{
		{"public base", S3Store{bucket: "b", region: "us-east-1", publicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com/temp/k.png"},
		{"custom endpoint", S3Store{bucket: "b", endpoint: "https://r2.example.com"}, "https://r2.example.com/b/temp/k.png"},
		{"aws default", S3Store{bucket: "b", region: "us-west-2"}, "https://b.s3.us-west-2.amazonaws.com/temp/k.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.store.publicURL("temp/k.png"))
		})
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")

	obj, err := store.Put(context.Background(), "uploads/a.png", []byte("abc"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://blob.test/uploads/a.png", obj.URL)
	assert.EqualValues(t, 3, obj.Size)

	got, ok := store.Get("uploads/a.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, []string{"uploads/a.png"}, store.Keys())

	store.Err = errors.New("bucket offline")
	_, err = store.Put(context.Background(), "uploads/b.png", nil, "image/png")
	assert.EqualError(t, err, "bucket offline")
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client())

	data, err := fetcher.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "status 404")
}

func TestFetcher_RejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exact.png":
			_, _ = w.Write([]byte("12345678"))
		default:
			_, _ = w.Write([]byte("123456789"))
		}
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client())
	assert.EqualValues(t, maxFetchBytes, fetcher.maxBytes)
	fetcher.maxBytes = 8

	data, err := fetcher.Fetch(context.Background(), srv.URL+"/exact.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("12345678"), data)

	data, err = fetcher.Fetch(context.Background(), srv.URL+"/big.png")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, data)
}
