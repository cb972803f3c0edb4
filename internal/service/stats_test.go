package service

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsReportsQuota(t *testing.T) {
	env := newEnv(t)
	viper.Set("storage.max_usage", int64(5<<30))

	svc := NewStats(env.store)

	video := mp4Bytes(2048)
	_, err := env.uploader.Do(context.Background(), validInput(video, nil))
	require.NoError(t, err)

	stats, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalFiles)
	assert.Equal(t, int64(len(video)), stats.TotalSize)
	assert.Equal(t, int64(len(video)), stats.UsedQuota)
	assert.Equal(t, int64(5<<30), stats.UserQuota)
}

func TestStatsGlobalVersusOwner(t *testing.T) {
	env := newEnv(t)
	svc := NewStats(env.store)
	ctx := context.Background()

	_, err := env.uploader.Do(ctx, validInput(mp4Bytes(1024), pngBytes(128)))
	require.NoError(t, err)

	other := validInput(mp4Bytes(512), nil)
	other.OwnerID = "bob"
	_, err = env.uploader.Do(ctx, other)
	require.NoError(t, err)

	global, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), global.TotalFiles)
	assert.Equal(t, int64(2), global.VideoCount)
	assert.Equal(t, int64(1), global.ImageCount)

	bob, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), bob.TotalFiles)
	assert.Less(t, bob.UsedQuota, global.UsedQuota)
}

func TestStatsUnchangedByFailedUpload(t *testing.T) {
	env := newEnv(t)
	svc := NewStats(env.store)
	ctx := context.Background()

	_, err := env.uploader.Do(ctx, validInput(mp4Bytes(1024), nil))
	require.NoError(t, err)

	before, err := svc.Get(ctx, "")
	require.NoError(t, err)

	env.catalog.status = 503
	_, err = env.uploader.Do(ctx, validInput(mp4Bytes(4096), pngBytes(256)))
	require.Error(t, err)

	after, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, before.TotalFiles, after.TotalFiles)
	assert.Equal(t, before.TotalSize, after.TotalSize)
	assert.Equal(t, before.VideoCount, after.VideoCount)
}
