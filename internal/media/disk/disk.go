// Package disk stores media files on the local filesystem. Files land under
// a configured directory and are served by the HTTP server at /uploads.
package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/streamhive/streamhive/internal/media"
)

type Store struct {
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *Store) Upload(_ context.Context, input media.UploadInput) (*media.UploadResult, error) {
	key := filepath.Base(input.Key) // never escape the media dir
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, input.Data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &media.UploadResult{
		Key: key,
		URL: fmt.Sprintf("%s/uploads/%s", s.baseURL, key),
	}, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(key)))
}

// Dir returns the directory files are written to, for static serving.
func (s *Store) Dir() string {
	return s.dir
}
