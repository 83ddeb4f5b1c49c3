package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/streamhive/streamhive/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "http://media.test/")
	require.NoError(t, err)

	result, err := store.Upload(context.Background(), media.UploadInput{
		Key:  "abc123.png",
		Data: strings.NewReader("file-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123.png", result.Key)
	assert.Equal(t, "http://media.test/uploads/abc123.png", result.URL)

	data, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	require.NoError(t, err)
	assert.Equal(t, "file-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "abc123.png"))
	_, err = os.Stat(filepath.Join(dir, "abc123.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, "http://media.test")
	require.NoError(t, err)

	result, err := store.Upload(context.Background(), media.UploadInput{
		Key:  "../../etc/escape.txt",
		Data: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", result.Key)

	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}

func TestStore_DeleteMissingKey(t *testing.T) {
	store, err := New(t.TempDir(), "http://media.test")
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "never-stored.png"))
}
