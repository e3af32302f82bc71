package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStore keeps objects in process memory. Used when no S3 endpoint is
// configured and in tests.
type MemoryStore struct {
	mu            sync.RWMutex
	objects       map[string]memoryObject
	publicBaseURL string
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore creates an empty MemoryStore serving URLs under publicBaseURL.
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{
		objects:       make(map[string]memoryObject),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (m *MemoryStore) Upload(_ context.Context, key string, body io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return fmt.Errorf("uploading %q: %w", key, err)
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{data: buf.Bytes(), contentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) PublicURL(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}
	return m.publicBaseURL + "/" + escapeKey(key), nil
}

// Object returns the stored bytes and content type for key.
func (m *MemoryStore) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}
