package blob

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]MemoryObject

	// Err, when set, is returned by every Put.
	Err error
}

type MemoryObject struct {
	Data        []byte
	ContentType string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "https://blob.test"
	}
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	m.objects[key] = MemoryObject{Data: append([]byte(nil), data...), ContentType: contentType}

	return &Object{
		Key:         key,
		URL:         m.baseURL + "/" + key,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (m *MemoryStore) Get(key string) (MemoryObject, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Keys returns every stored key in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
