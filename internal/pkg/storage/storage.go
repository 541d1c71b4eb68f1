package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations.
type Storage interface {
	// Save stores content at the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
