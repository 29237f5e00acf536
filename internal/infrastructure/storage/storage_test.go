package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func TestImageStoreSaveAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewImageStore(dir, "uploads/", 1024)
	require.NoError(t, err)

	url, err := store.Save(ctx, fileHeader(t, "pitch.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	path := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, store.Delete(ctx, url))
	assert.NoError(t, store.Delete(ctx, "https://cdn.example.com/x.png"))
	assert.NoError(t, store.Delete(ctx, "/uploads/../secret"))
}

func TestImageStoreRejects(t *testing.T) {
	ctx := context.Background()
	store, err := NewImageStore(t.TempDir(), "/uploads", 8)
	require.NoError(t, err)

	_, err = store.Save(ctx, fileHeader(t, "notes.txt", []byte("hi")))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = store.Save(ctx, fileHeader(t, "big.jpg", []byte("0123456789")))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
