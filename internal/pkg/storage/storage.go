package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("storage path escapes the base directory")
	ErrFileNotFound = errors.New("stored file not found")
)

// FileStorage keeps punch photos. Paths are relative keys such as
// "punches/2025-03-10/<employee>-<unix>.jpg".
type FileStorage interface {
	// Upload writes the content under path and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Open returns ErrFileNotFound when the key does not exist
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, path string) error

	// URL returns a public URL for a stored key
	URL(path string) string

	Exists(ctx context.Context, path string) (bool, error)
}
