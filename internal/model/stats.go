package model

// StorageStats is the read-side aggregation over stored files. When an
// owner filter is applied UsedQuota covers only that owner, otherwise
// it reports global usage.
type StorageStats struct {
	TotalFiles    int64 `json:"totalFiles"`
	TotalSize     int64 `json:"totalSizeBytes"`
	VideoCount    int64 `json:"videoCount"`
	ImageCount    int64 `json:"imageCount"`
	SubtitleCount int64 `json:"subtitleCount"`
	UserQuota     int64 `json:"userQuotaBytes"`
	UsedQuota     int64 `json:"usedQuotaBytes"`
}
