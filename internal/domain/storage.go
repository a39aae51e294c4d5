package domain

import (
	"context"
	"io"
)

// ObjectStorage wraps the external blob store for PDF files.
type ObjectStorage interface {
	// Upload stores an object at path with upsert semantics.
	Upload(ctx context.Context, path string, data io.Reader, contentType string) error
	// PublicURL returns the public URL for an object at path.
	PublicURL(path string) string
	// Remove deletes the object at path.
	Remove(ctx context.Context, path string) error
}
