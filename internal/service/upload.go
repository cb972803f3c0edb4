// Package service holds the ingestion orchestrator and the accounting
// reads. The orchestrator is the only writer that touches the blob
// store, the metadata store and the catalog in one operation.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"bitwise74/ingest-api/catalog"
	"bitwise74/ingest-api/internal/model"
	"bitwise74/ingest-api/internal/store"
	"bitwise74/ingest-api/storage"
	"bitwise74/ingest-api/validators"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogClient is what the orchestrator needs from the movie catalog.
// *catalog.Client satisfies it, tests substitute their own.
type CatalogClient interface {
	CreateMovie(ctx context.Context, req *catalog.CreateMovieRequest) (string, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

// Uploader turns one inbound (video, optional poster, metadata) triple
// into a registered catalog movie, or fails cleanly. Single attempt,
// no retries: either blobs, metadata rows and the catalog entry all
// exist afterwards, or none of them do.
type Uploader struct {
	Files   store.FileStore
	Uploads store.UploadStore
	Blobs   storage.Store
	Catalog CatalogClient
}

func NewUploader(files store.FileStore, uploads store.UploadStore, blobs storage.Store, cat CatalogClient) *Uploader {
	return &Uploader{
		Files:   files,
		Uploads: uploads,
		Blobs:   blobs,
		Catalog: cat,
	}
}

type UploadInput struct {
	Video     io.ReadSeeker
	VideoName string
	VideoSize int64

	// Poster is optional, nil means none was sent
	Poster     io.ReadSeeker
	PosterName string
	PosterSize int64

	Meta    model.MovieMetadata
	OwnerID string
}

type UploadResult struct {
	UploadID string            `json:"uploadId"`
	MovieID  string            `json:"movieId"`
	File     *model.StoredFile `json:"file"`
}

// undo is one compensating action, pushed as its step commits and run
// in reverse order if a later step fails.
type undo struct {
	what string
	fn   func(ctx context.Context) error
}

// Do runs one ingestion attempt end to end. The audit UploadRecord is
// written before anything else so even attempts that fail validation
// leave a trace. Any error after that marks the record failed, undoes
// every committed side effect and is returned to the caller unchanged.
func (u *Uploader) Do(ctx context.Context, in *UploadInput) (res *UploadResult, err error) {
	rec := &model.UploadRecord{
		ID:       uuid.NewString(),
		OwnerID:  in.OwnerID,
		FileName: in.VideoName,
		Size:     in.VideoSize,
		Status:   model.UploadUploading,
		Progress: 5,
	}

	if err := u.Uploads.CreateUpload(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create upload record, %w", err)
	}

	var undos []undo

	defer func() {
		if err == nil {
			return
		}

		// The original error is what the caller gets. Cleanup failures
		// are logged, never surfaced in its place
		u.fail(rec.ID, err)
		u.rollback(undos)
	}()

	videoMime, err := validators.VideoValidator(in.Video, in.VideoSize, in.VideoName)
	if err != nil {
		return nil, err
	}

	var posterMime string
	if in.Poster != nil {
		posterMime, err = validators.PosterValidator(in.Poster, in.PosterSize, in.PosterName)
		if err != nil {
			return nil, err
		}
	}

	if err = validators.MetadataValidator(&in.Meta); err != nil {
		return nil, err
	}

	// Step 1: video bytes, then its metadata row
	videoFile, videoUndos, err := u.saveFile(ctx, in.Video, in.VideoSize, in.VideoName, videoMime, model.CategoryVideo, in.OwnerID)
	undos = append(undos, videoUndos...)
	if err != nil {
		return nil, err
	}

	// Step 2: same for the poster if one was sent
	var posterFile *model.StoredFile
	if in.Poster != nil {
		var posterUndos []undo
		posterFile, posterUndos, err = u.saveFile(ctx, in.Poster, in.PosterSize, in.PosterName, posterMime, model.CategoryImage, in.OwnerID)
		undos = append(undos, posterUndos...)
		if err != nil {
			return nil, err
		}
	}

	// Step 3: blobs and rows are durable, attempt moves to processing
	if err = u.Uploads.SetUploadState(ctx, rec.ID, model.UploadProcessing, 50); err != nil {
		return nil, fmt.Errorf("failed to advance upload record, %w", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: the only network call and the only step without a local
	// undo. In-process failures after this point are compensated with
	// DeleteMovie; a crash between here and ready is a known gap
	movieID, err := u.Catalog.CreateMovie(ctx, buildCatalogRequest(&in.Meta, videoFile, posterFile))
	if err != nil {
		return nil, err
	}

	undos = append(undos, undo{"remove catalog entry", func(c context.Context) error {
		return u.Catalog.DeleteMovie(c, movieID)
	}})

	zap.L().Debug("Catalog entry created", zap.String("movieID", movieID), zap.String("uploadID", rec.ID))

	// Step 5: back-fill the movie id and finalize the attempt
	if err = u.Files.SetFileMovie(ctx, videoFile.ID, movieID); err != nil {
		return nil, fmt.Errorf("failed to link video to movie, %w", err)
	}

	if posterFile != nil {
		if err = u.Files.SetFileMovie(ctx, posterFile.ID, movieID); err != nil {
			return nil, fmt.Errorf("failed to link poster to movie, %w", err)
		}
	}

	if err = u.Uploads.MarkUploadReady(ctx, rec.ID, videoFile.ID, movieID); err != nil {
		return nil, fmt.Errorf("failed to finalize upload record, %w", err)
	}

	videoFile.MovieID = &movieID

	return &UploadResult{
		UploadID: rec.ID,
		MovieID:  movieID,
		File:     videoFile,
	}, nil
}

// saveFile writes one object to the blob store and records its
// metadata row. Undo actions for whatever committed are returned even
// when the second half fails.
func (u *Uploader) saveFile(ctx context.Context, r io.Reader, size int64, name, mime string, category model.FileCategory, ownerID string) (*model.StoredFile, []undo, error) {
	blob, err := u.Blobs.Save(ctx, r, size, name, mime, category)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store %s blob, %w", category, err)
	}

	undos := []undo{{
		what: fmt.Sprintf("delete %s blob %s", category, blob.FileKey),
		fn: func(c context.Context) error {
			return u.Blobs.Delete(c, blob.RelativePath)
		},
	}}

	file := &model.StoredFile{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		FileKey:      blob.FileKey,
		OriginalName: name,
		Format:       mime,
		Size:         size,
		Category:     category,
		StoragePath:  blob.RelativePath,
		AbsolutePath: blob.AbsolutePath,
		UploadedAt:   time.Now().Unix(),
	}

	if err := u.Files.CreateFile(ctx, file); err != nil {
		return nil, undos, fmt.Errorf("failed to save %s metadata, %w", category, err)
	}

	undos = append(undos, undo{
		what: fmt.Sprintf("delete %s row %s", category, file.ID),
		fn: func(c context.Context) error {
			return u.Files.DeleteFile(c, file.ID)
		},
	})

	return file, undos, nil
}

// rollback runs compensating actions newest first, best effort. It
// deliberately uses a fresh context so cleanup still runs when the
// request context is already canceled.
func (u *Uploader) rollback(undos []undo) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := len(undos) - 1; i >= 0; i-- {
		if err := undos[i].fn(ctx); err != nil {
			zap.L().Error("Rollback step failed", zap.String("step", undos[i].what), zap.Error(err))
			continue
		}

		zap.L().Debug("Rolled back", zap.String("step", undos[i].what))
	}
}

func (u *Uploader) fail(uploadID string, cause error) {
	if err := u.Uploads.MarkUploadFailed(context.Background(), uploadID, cause.Error()); err != nil {
		zap.L().Error("Failed to mark upload record as failed", zap.String("uploadID", uploadID), zap.Error(err))
	}
}

func buildCatalogRequest(meta *model.MovieMetadata, video, poster *model.StoredFile) *catalog.CreateMovieRequest {
	req := &catalog.CreateMovieRequest{
		Title:       meta.Title,
		Description: meta.Description,
		Year:        meta.Year,
		Duration:    meta.Duration,
		Quality:     meta.Quality,
		Rating:      meta.Rating,
		Genres:      meta.Genres,
		Tags:        meta.Tags,
		Director:    meta.Director,
		Cast:        meta.Cast,
		TrailerURL:  meta.TrailerURL,
		StreamURL:   video.StreamURL(),
		DownloadURL: video.DownloadURL(),
	}

	if poster != nil {
		req.PosterURL = poster.StreamURL()
	}

	return req
}
