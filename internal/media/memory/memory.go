// Package memory is an in-memory media.Store used in tests. It keeps
// metadata only, not file bytes.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/streamhive/streamhive/internal/media"
)

type fileEntry struct {
	Key         string
	ContentType string
	Size        int64
	URL         string
}

type Store struct {
	mu      sync.RWMutex
	files   map[string]*fileEntry
	baseURL string
}

func New(baseURL string) *Store {
	return &Store{
		files:   make(map[string]*fileEntry),
		baseURL: baseURL,
	}
}

func (s *Store) Upload(_ context.Context, input media.UploadInput) (*media.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := fmt.Sprintf("%s/uploads/%s", s.baseURL, input.Key)
	s.files[input.Key] = &fileEntry{
		Key:         input.Key,
		ContentType: input.ContentType,
		Size:        input.Size,
		URL:         url,
	}

	return &media.UploadResult{Key: input.Key, URL: url}, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		return fmt.Errorf("file not found: %s", key)
	}
	delete(s.files, key)
	return nil
}

// Len reports how many files are currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
