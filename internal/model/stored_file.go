// Package model defines database models
package model

import "github.com/spf13/viper"

// FileCategory decides which storage namespace and which accounting
// bucket a file belongs to. Fixed at creation.
type FileCategory string

const (
	CategoryVideo    FileCategory = "video"
	CategoryImage    FileCategory = "image"
	CategorySubtitle FileCategory = "subtitle"
	CategoryOther    FileCategory = "other"
)

type StoredFile struct {
	ID      string `gorm:"primaryKey" json:"id"`
	OwnerID string `gorm:"index" json:"-"`

	// Set once the catalog entry for this file exists. Nil for files
	// that never went through movie ingestion (e.g. standalone posters)
	MovieID *string `gorm:"index" json:"movie_id,omitempty"`

	// Generated storage key, unique per object. Original file names may
	// collide between users so objects are never stored under them
	FileKey      string       `json:"file_key"`
	OriginalName string       `json:"name"`
	Format       string       `json:"format"`
	Size         int64        `json:"size"`
	Category     FileCategory `gorm:"index" json:"category"`

	// Where the bytes live inside the blob store. Immutable once written
	StoragePath  string `json:"-"`
	AbsolutePath string `json:"-"`

	UploadedAt int64 `gorm:"not null" json:"uploaded_at"`
}

// StreamURL returns the public playback URL for this file. It's derived
// on the fly instead of stored because it only depends on the ID and
// the configured public base, both of which are immutable.
func (f *StoredFile) StreamURL() string {
	return viper.GetString("host.public_url") + "/api/files/" + f.ID
}

// DownloadURL returns the public attachment-download URL for this file.
func (f *StoredFile) DownloadURL() string {
	return viper.GetString("host.public_url") + "/api/files/" + f.ID + "?download=1"
}
