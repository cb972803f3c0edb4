package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"bitwise74/ingest-api/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStore keeps blobs on the local filesystem under
// root/<category>/<key>. Writes go through a temp file plus rename so
// a reader can never observe a half written object.
type LocalStore struct {
	root string
}

func NewLocal(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root, %w", err)
	}

	return &LocalStore{root: root}, nil
}

func (l *LocalStore) Save(ctx context.Context, r io.Reader, size int64, originalName, mime string, category model.FileCategory) (*SavedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(l.root, categoryDir(category))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create category dir, %w", err)
	}

	key := uuid.NewString() + path.Ext(originalName)
	dst := filepath.Join(dir, key)

	temp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file, %w", err)
	}

	written, err := io.Copy(temp, r)
	if err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return nil, fmt.Errorf("failed to write blob, %w", err)
	}

	if size > 0 && written != size {
		temp.Close()
		os.Remove(temp.Name())
		return nil, fmt.Errorf("short write, expected %d bytes got %d", size, written)
	}

	if err := temp.Sync(); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return nil, fmt.Errorf("failed to flush blob, %w", err)
	}
	temp.Close()

	// Generated keys never collide, so an existing destination means
	// something is seriously wrong. Refuse to overwrite
	if _, err := os.Stat(dst); err == nil {
		os.Remove(temp.Name())
		return nil, fmt.Errorf("object %s already exists", key)
	}

	if err := os.Rename(temp.Name(), dst); err != nil {
		os.Remove(temp.Name())
		return nil, fmt.Errorf("failed to finalize blob, %w", err)
	}

	zap.L().Debug("Blob written", zap.String("key", key), zap.Int64("size", written))

	return &SavedBlob{
		FileKey:      key,
		RelativePath: path.Join(categoryDir(category), key),
		AbsolutePath: dst,
	}, nil
}

func (l *LocalStore) Open(ctx context.Context, relativePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(relativePath)))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob, %w", err)
	}

	return f, nil
}

// Delete is idempotent. Removing a path that's already gone succeeds.
func (l *LocalStore) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(relativePath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob, %w", err)
	}

	return nil
}
