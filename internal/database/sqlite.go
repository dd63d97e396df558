package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// ConnectSQLite opens the local record store at the given path. TranslateError
// is enabled so unique-index violations surface as gorm.ErrDuplicatedKey.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every record collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Setting{},
		&models.Student{},
		&models.Staff{},
		&models.AttendanceRecord{},
		&models.SalaryPayment{},
		&models.FeePayment{},
		&models.BackupRun{},
	)
}
