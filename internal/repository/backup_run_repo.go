package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// BackupRunRepository stores the history of completed exports.
type BackupRunRepository interface {
	Create(ctx context.Context, run *models.BackupRun) error
	List(ctx context.Context, limit int) ([]models.BackupRun, error)
}

type backupRunRepository struct {
	db *gorm.DB
}

// NewBackupRunRepository constructs a backup run repository.
func NewBackupRunRepository(db *gorm.DB) BackupRunRepository {
	return &backupRunRepository{db: db}
}

func (r *backupRunRepository) Create(ctx context.Context, run *models.BackupRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *backupRunRepository) List(ctx context.Context, limit int) ([]models.BackupRun, error) {
	query := r.db.WithContext(ctx).Model(&models.BackupRun{}).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var runs []models.BackupRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
