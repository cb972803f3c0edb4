// Package store holds the metadata persistence layer. Everything that
// touches file or upload rows goes through these interfaces so tests
// and callers can swap the backing database; nothing in the app reaches
// for a package level singleton.
package store

import (
	"context"

	"bitwise74/ingest-api/internal/model"
)

// FileStore is CRUD plus the aggregate queries over StoredFile rows.
// Mutations are single row, there's no multi row transaction in the
// contract. That's deliberate: rollback after a failed ingestion is
// done with compensating deletes, not a wrapping transaction.
type FileStore interface {
	CreateFile(ctx context.Context, f *model.StoredFile) error
	GetFile(ctx context.Context, id string) (*model.StoredFile, error)
	ListFilesByOwner(ctx context.Context, ownerID string, offset, limit int, order string) ([]model.StoredFile, error)
	ListFilesByMovie(ctx context.Context, movieID string) ([]model.StoredFile, error)
	SetFileMovie(ctx context.Context, fileID, movieID string) error
	DeleteFile(ctx context.Context, id string) error

	// Stats aggregates count/size grouped by category. An empty ownerID
	// reports global usage
	Stats(ctx context.Context, ownerID string) (*model.StorageStats, error)
}

// UploadStore is CRUD over upload attempt audit rows.
type UploadStore interface {
	CreateUpload(ctx context.Context, u *model.UploadRecord) error
	GetUpload(ctx context.Context, id string) (*model.UploadRecord, error)
	SetUploadState(ctx context.Context, id string, status model.UploadStatus, progress int) error
	MarkUploadReady(ctx context.Context, id, fileID, movieID string) error
	MarkUploadFailed(ctx context.Context, id, cause string) error
	DeleteUpload(ctx context.Context, id string) error
}
