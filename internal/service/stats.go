package service

import (
	"context"
	"fmt"

	"bitwise74/ingest-api/internal/model"
	"bitwise74/ingest-api/internal/store"

	"github.com/spf13/viper"
)

// Stats serves the read-side usage aggregation. Pure reads, the quota
// ceiling is config, not enforced here.
type Stats struct {
	Files store.FileStore
}

func NewStats(files store.FileStore) *Stats {
	return &Stats{Files: files}
}

// Get returns usage totals, scoped to ownerID when it's non-empty. The
// numbers may lag an in-flight upload by design, terminal states are
// always consistent.
func (s *Stats) Get(ctx context.Context, ownerID string) (*model.StorageStats, error) {
	stats, err := s.Files.Stats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate storage stats, %w", err)
	}

	stats.UserQuota = viper.GetInt64("storage.max_usage")

	return stats, nil
}
