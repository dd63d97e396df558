package models

import (
	"time"

	"gorm.io/datatypes"
)

// BackupRun records a completed snapshot export: where it was written and
// how many rows each collection contributed.
type BackupRun struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	RunID     string         `gorm:"size:36;uniqueIndex" json:"run_id"`
	Scope     string         `gorm:"size:32" json:"scope"`
	FilePath  string         `json:"file_path"`
	Session   string         `gorm:"size:16" json:"session"`
	Counts    datatypes.JSON `json:"counts"`
	CreatedAt time.Time      `json:"created_at"`
}
