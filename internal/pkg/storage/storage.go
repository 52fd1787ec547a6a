package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface for file storage backends.
// Intentionally simple: save a file, delete a file, get its URL.
type Storage interface {
	// Put stores a file under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored key.
	GetURL(key string) string
}
