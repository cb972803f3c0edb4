package model

// UploadStatus tracks one ingestion attempt through its state machine:
// uploading -> processing -> ready | failed
type UploadStatus string

const (
	UploadUploading  UploadStatus = "uploading"
	UploadProcessing UploadStatus = "processing"
	UploadReady      UploadStatus = "ready"
	UploadFailed     UploadStatus = "failed"
)

// UploadRecord is the audit row for a single ingestion attempt. One row
// per attempt, kept around whether or not the attempt succeeded.
type UploadRecord struct {
	ID       string       `gorm:"primaryKey" json:"id"`
	OwnerID  string       `gorm:"index" json:"-"`
	FileName string       `json:"file_name"`
	Size     int64        `json:"size"`
	Status   UploadStatus `json:"status"`

	// 0-100, never decreases except on failure where it resets to 0
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`

	// Both only set when Status == ready
	FileID  *string `json:"file_id,omitempty"`
	MovieID *string `json:"movie_id,omitempty"`

	CreatedAt int64 `gorm:"not null" json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
