package entity

import "time"

// StorageEntry is one key of the key/value storage when it lives in a SQL database.
type StorageEntry struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}

// Storage keys of the patient registry
const (
	StorageKeyPatients      = "patients"
	StorageKeyNextPatientID = "nextPatientId"
)
