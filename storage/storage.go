// Package storage implements the blob backends uploaded bytes are
// persisted to. Backends know nothing about movies or uploads, they
// store and delete opaque objects under category namespaces.
package storage

import (
	"context"
	"io"

	"bitwise74/ingest-api/internal/model"
)

// SavedBlob describes where a Save ended up.
type SavedBlob struct {
	// Generated object name, unique per save. Original file names may
	// collide so they're never used as keys
	FileKey string

	// Path relative to the store root (or bucket), used for later
	// Open/Delete calls
	RelativePath string

	// Backend specific absolute location, for logs and audit rows
	AbsolutePath string
}

// Store is the blob backend contract. Save must never overwrite an
// existing object and must not make a partially written object
// visible. Delete of a path that doesn't exist is not an error.
type Store interface {
	Save(ctx context.Context, r io.Reader, size int64, originalName, mime string, category model.FileCategory) (*SavedBlob, error)
	Open(ctx context.Context, relativePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, relativePath string) error
}

// categoryDir maps a file category onto its namespace inside the store.
func categoryDir(c model.FileCategory) string {
	switch c {
	case model.CategoryVideo:
		return "videos"
	case model.CategoryImage:
		return "images"
	case model.CategorySubtitle:
		return "subtitles"
	default:
		return "other"
	}
}
