package model

import (
	"time"
)

// Download is one fetch attempt: the source URL, the local destination,
// its status lifecycle, and the optional object-storage mirror.
type Download struct {
	Id           int       `json:"id" gorm:"primaryKey"`
	URL          string    `json:"url" gorm:"column:url;type:varchar(500)"`
	Path         string    `json:"path" gorm:"column:path;type:varchar(255)"`
	TargetSize   int       `json:"target_size" gorm:"column:target_size;type:int"`
	Status       string    `json:"status" gorm:"column:status;type:enum('pending', 'running', 'succeed', 'failed')"`
	FailedReason string    `json:"failed_reason" gorm:"column:failed_reason;type:varchar(1000)"`

	StorageSupplierName string `json:"storage_supplier_name" gorm:"column:storage_supplier_name;type:varchar(20)"`
	Key                 string `json:"key" gorm:"column:key;type:varchar(100)"`
	RemoteURL           string `json:"remote_url" gorm:"column:remote_url;type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;type:datetime;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;type:datetime;not null;default:CURRENT_TIMESTAMP"`
}

func (Download) TableName() string {
	return "download"
}

type DownloadStatus string

const (
	DownloadStatusPending DownloadStatus = "pending"
	DownloadStatusRunning DownloadStatus = "running"
	DownloadStatusSucceed DownloadStatus = "succeed"
	DownloadStatusFailed  DownloadStatus = "failed"
)

func (s DownloadStatus) String() string {
	return string(s)
}
