package store

import (
	"context"
	"time"

	"bitwise74/ingest-api/internal/model"

	"gorm.io/gorm"
)

// GormStore implements FileStore and UploadStore on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateFile(ctx context.Context, f *model.StoredFile) error {
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *GormStore) GetFile(ctx context.Context, id string) (*model.StoredFile, error) {
	var file model.StoredFile

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&file).
		Error
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (s *GormStore) ListFilesByOwner(ctx context.Context, ownerID string, offset, limit int, order string) ([]model.StoredFile, error) {
	var files []model.StoredFile

	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&files).
		Error
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (s *GormStore) ListFilesByMovie(ctx context.Context, movieID string) ([]model.StoredFile, error) {
	var files []model.StoredFile

	err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Find(&files).
		Error
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (s *GormStore) SetFileMovie(ctx context.Context, fileID, movieID string) error {
	return s.db.WithContext(ctx).
		Model(model.StoredFile{}).
		Where("id = ?", fileID).
		Update("movie_id", movieID).
		Error
}

func (s *GormStore) DeleteFile(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(model.StoredFile{}).
		Error
}

type categoryRow struct {
	Category model.FileCategory
	Count    int64
	Size     int64
}

func (s *GormStore) Stats(ctx context.Context, ownerID string) (*model.StorageStats, error) {
	q := s.db.WithContext(ctx).Model(model.StoredFile{})
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	var rows []categoryRow

	err := q.
		Select("category, COUNT(*) AS count, COALESCE(SUM(size), 0) AS size").
		Group("category").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	stats := &model.StorageStats{}

	for _, r := range rows {
		stats.TotalFiles += r.Count
		stats.TotalSize += r.Size

		switch r.Category {
		case model.CategoryVideo:
			stats.VideoCount = r.Count
		case model.CategoryImage:
			stats.ImageCount = r.Count
		case model.CategorySubtitle:
			stats.SubtitleCount = r.Count
		}
	}

	stats.UsedQuota = stats.TotalSize

	return stats, nil
}

func (s *GormStore) CreateUpload(ctx context.Context, u *model.UploadRecord) error {
	now := time.Now().Unix()
	if u.CreatedAt == 0 {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	return s.db.WithContext(ctx).Create(u).Error
}

func (s *GormStore) GetUpload(ctx context.Context, id string) (*model.UploadRecord, error) {
	var rec model.UploadRecord

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *GormStore) SetUploadState(ctx context.Context, id string, status model.UploadStatus, progress int) error {
	return s.db.WithContext(ctx).
		Model(model.UploadRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"progress":   progress,
			"updated_at": time.Now().Unix(),
		}).
		Error
}

func (s *GormStore) MarkUploadReady(ctx context.Context, id, fileID, movieID string) error {
	return s.db.WithContext(ctx).
		Model(model.UploadRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     model.UploadReady,
			"progress":   100,
			"file_id":    fileID,
			"movie_id":   movieID,
			"updated_at": time.Now().Unix(),
		}).
		Error
}

func (s *GormStore) MarkUploadFailed(ctx context.Context, id, cause string) error {
	return s.db.WithContext(ctx).
		Model(model.UploadRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     model.UploadFailed,
			"progress":   0,
			"error":      cause,
			"updated_at": time.Now().Unix(),
		}).
		Error
}

func (s *GormStore) DeleteUpload(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(model.UploadRecord{}).
		Error
}
