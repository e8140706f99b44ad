// Package filestore keeps product images on the local filesystem.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
)

const (
	DefaultMaxBytes = 5 << 20
	imageField      = "image"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

var errTooLarge = domain.NewFieldError(imageField, "Image size must be <= 5MB")

// ImageStore writes uploads under a single directory.
type ImageStore struct {
	dir      string
	maxBytes int64
}

var _ ports.ImageStore = (*ImageStore)(nil)

// NewImageStore creates dir if needed. maxBytes <= 0 selects DefaultMaxBytes.
func NewImageStore(dir string, maxBytes int64) (*ImageStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the directory served under /uploads/products.
func (s *ImageStore) Dir() string { return s.dir }

// Save validates the upload by size and sniffed content type, then stores it
// as <uuid>_<basename>.
func (s *ImageStore) Save(_ context.Context, upload ports.ImageUpload) (string, error) {
	if upload.Size > s.maxBytes {
		return "", errTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxBytes+1))
	if err != nil {
		return "", domain.NewFieldError(imageField, "Failed to store product image")
	}
	if int64(len(data)) > s.maxBytes {
		return "", errTooLarge
	}

	if !isAllowed(mimetype.Detect(data)) {
		return "", domain.NewFieldError(imageField, "Only JPG, PNG, JPEG, WEBP images are allowed")
	}

	name := uuid.NewString() + "_" + baseName(upload.Filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", domain.NewFieldError(imageField, "Failed to store product image")
	}
	return name, nil
}

// Remove deletes a stored image. The shared default image and names that
// would escape the directory are ignored.
func (s *ImageStore) Remove(_ context.Context, name string) error {
	if name == "" || name == domain.DefaultImageName || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}

func isAllowed(m *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// baseName strips directories and characters that do not belong in a file name.
func baseName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == "/" || strings.Trim(name, "_.") == "" {
		return "image"
	}
	return name
}
