package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultFetchTimeout = 30 * time.Second
	maxFetchBytes       = 25 << 20
)

// Fetcher downloads stored images back by their public URL.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// ErrTooLarge is returned when a fetched body exceeds the fetcher's size limit.
var ErrTooLarge = errors.New("response body too large")

func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{httpClient: httpClient, maxBytes: maxFetchBytes}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	// One byte past the limit tells an oversized body apart from one that fits exactly.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetch %s: %w (limit %d bytes)", url, ErrTooLarge, f.maxBytes)
	}

	return data, nil
}
