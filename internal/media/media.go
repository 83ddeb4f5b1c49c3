package media

import (
	"context"
	"io"
)

// Store is the boundary to external media storage. The application only ever
// uploads a stream, deletes by key, and embeds the returned URL in records.
type Store interface {
	// Upload persists a file stream and returns its key and public URL.
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)

	// Delete removes a stored file by key. Deleting a missing key is an error.
	Delete(ctx context.Context, key string) error
}

// UploadInput holds the parameters for an upload.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the outcome of a successful upload.
type UploadResult struct {
	Key string
	URL string
}
