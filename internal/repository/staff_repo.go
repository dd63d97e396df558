package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// StaffFilter narrows a staff listing. An empty Session matches every session.
type StaffFilter struct {
	Session string
	Search  string
}

// StaffRepository provides access to the staff collection.
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	UpsertByStaffID(ctx context.Context, staff *models.Staff) error
	GetByStaffID(ctx context.Context, staffID string) (models.Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]models.Staff, error)
	CountAll(ctx context.Context) (int64, error)
	CountBySession(ctx context.Context, session string) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository constructs a staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *staffRepository) UpsertByStaffID(ctx context.Context, staff *models.Staff) error {
	var existing models.Staff
	err := r.db.WithContext(ctx).Where("staff_id = ?", staff.StaffID).First(&existing).Error
	switch {
	case err == nil:
		staff.ID = existing.ID
		staff.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(staff).Error
	case err == gorm.ErrRecordNotFound:
		return r.Create(ctx, staff)
	default:
		return err
	}
}

func (r *staffRepository) GetByStaffID(ctx context.Context, staffID string) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&staff).Error; err != nil {
		return models.Staff{}, err
	}
	return staff, nil
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]models.Staff, error) {
	query := r.db.WithContext(ctx).Model(&models.Staff{})

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(staff_id) LIKE ?", like, like)
	}

	var staff []models.Staff
	if err := query.Order("id").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Staff{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *staffRepository) CountBySession(ctx context.Context, session string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("session = ?", session).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *staffRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Staff{}, id).Error
}

func (r *staffRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Staff{}).Error
}
