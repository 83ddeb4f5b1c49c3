package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/media"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory;
// the rest spills to temp files that net/http cleans up with the request.
const maxUploadMemory = 32 << 20

// uploadFormFile streams one multipart file field to the media store under a
// fresh key. A missing field is the caller's problem to interpret (avatar is
// required, cover image is not).
func uploadFormFile(ctx context.Context, store media.Store, r *http.Request, field string) (*media.UploadResult, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, domain.BadRequest(field + " file is required")
	}
	defer file.Close()

	key := uuid.New().String() + filepath.Ext(header.Filename)
	result, err := store.Upload(ctx, media.UploadInput{
		Key:         key,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		return nil, domain.Internal("failed to upload "+field, err)
	}
	return result, nil
}

// hasFormFile reports whether the multipart body carries the field at all.
func hasFormFile(r *http.Request, field string) bool {
	if r.MultipartForm == nil {
		return false
	}
	return len(r.MultipartForm.File[field]) > 0
}
