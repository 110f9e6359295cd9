package domain

import "time"

// EntityKind names the kind of record a bulk upload carries.
type EntityKind string

const (
	EntityKindCar      EntityKind = "car"
	EntityKindCustomer EntityKind = "customer"
)

// Valid reports whether k is a supported upload kind.
func (k EntityKind) Valid() bool {
	return k == EntityKindCar || k == EntityKindCustomer
}

// UploadStatus represents the status of a bulk upload.
// Values include UploadStatusPending, UploadStatusProcessing, UploadStatusSucceeded, and UploadStatusFailed.
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusSucceeded  UploadStatus = "succeeded"
	UploadStatusFailed     UploadStatus = "failed"
)

// Upload records one run of the ingestion pipeline and its outcome.
type Upload struct {
	ID               string       `gorm:"type:text;primaryKey" json:"id"`
	CompanyID        uint         `gorm:"not null;index" json:"company_id"`
	Kind             EntityKind   `gorm:"type:text;not null;index" json:"kind"`
	FileName         string       `gorm:"type:text" json:"file_name"`
	FileSize         int64        `gorm:"default:0" json:"file_size"`
	StorageKey       string       `gorm:"type:text" json:"storage_key,omitempty"`
	RequestID        string       `gorm:"type:text;index" json:"request_id,omitempty"`
	Status           UploadStatus `gorm:"type:text;default:pending;index" json:"status"`
	Stage            string       `gorm:"type:text" json:"stage"`
	TotalRows        int          `gorm:"default:0" json:"total_rows"`
	PersistedRows    int          `gorm:"default:0" json:"persisted_rows"`
	CommittedBatches int          `gorm:"default:0" json:"committed_batches"`
	ErrorKind        string       `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorLog         string       `gorm:"type:text" json:"error_log,omitempty"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// TableName returns the database table name for Upload.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Upload) TableName() string {
	return "uploads"
}
