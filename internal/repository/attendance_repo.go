package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// AttendanceKey is the de facto upsert key for attendance rows. The store
// declares no constraint for it; callers go through UpsertByKey instead.
type AttendanceKey struct {
	StudentNumber string
	Month         string
	Year          string
	Session       string
}

// AttendanceFilter narrows an attendance listing. An empty Session matches
// every session; Month/Year are optional.
type AttendanceFilter struct {
	Session string
	Month   string
	Year    string
}

// AttendanceRepository provides access to the attendance collection.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	FindByKey(ctx context.Context, key AttendanceKey) (models.AttendanceRecord, error)
	UpsertByKey(ctx context.Context, record *models.AttendanceRecord) error
	List(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error)
	AverageForMonth(ctx context.Context, session, month, year string) (float64, bool, error)
	AverageForSession(ctx context.Context, session string) (float64, error)
	DeleteAll(ctx context.Context) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs an attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepository) FindByKey(ctx context.Context, key AttendanceKey) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("student_number = ? AND month = ? AND year = ? AND session = ?",
			key.StudentNumber, key.Month, key.Year, key.Session).
		First(&record).Error
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return record, nil
}

// UpsertByKey updates the existing row for the record's composite key in
// place, or inserts when no row carries that key yet.
func (r *attendanceRepository) UpsertByKey(ctx context.Context, record *models.AttendanceRecord) error {
	existing, err := r.FindByKey(ctx, AttendanceKey{
		StudentNumber: record.StudentNumber,
		Month:         record.Month,
		Year:          record.Year,
		Session:       record.Session,
	})
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(record).Error
	case err == gorm.ErrRecordNotFound:
		return r.Create(ctx, record)
	default:
		return err
	}
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.AttendanceRecord{})

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}

	var records []models.AttendanceRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// AverageForMonth returns the mean stored percentage for one month. The
// second return value is false when the month has no rows at all.
func (r *attendanceRepository) AverageForMonth(ctx context.Context, session, month, year string) (float64, bool, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Where("session = ? AND month = ? AND year = ?", session, month, year).
		Select("AVG(percentage)").Scan(&avg).Error
	if err != nil {
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

func (r *attendanceRepository) AverageForSession(ctx context.Context, session string) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.AttendanceRecord{}).
		Where("session = ?", session).
		Select("AVG(percentage)").Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *attendanceRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.AttendanceRecord{}).Error
}
