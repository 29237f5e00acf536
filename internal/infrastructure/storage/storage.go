// Package storage keeps uploaded turf images on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedImage = errors.New("image must be a JPG, PNG or WEBP file")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageStore struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

func NewImageStore(dir, urlPrefix string, maxSize int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
	}, nil
}

// Save stores the upload under a random name and returns its public URL.
func (s *ImageStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fileHeader.Size > s.maxSize {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImage
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.NewString() + ext
	path := filepath.Join(s.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	// Guard against a Size header smaller than the body.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxSize {
		err = ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrImageTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write image file: %w", err)
	}

	return s.urlPrefix + "/" + filename, nil
}

// Delete removes an image previously returned by Save. URLs outside the
// store and already-missing files are ignored.
func (s *ImageStore) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}
