package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// StudentFilter narrows a student listing. An empty Session matches every
// session; Search matches name or student number.
type StudentFilter struct {
	Session string
	Search  string
	Class   string
	Section string
}

// StudentRepository provides access to the student collection.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	UpsertByNumber(ctx context.Context, student *models.Student) error
	GetByNumber(ctx context.Context, number string) (models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, error)
	CountAll(ctx context.Context) (int64, error)
	CountBySession(ctx context.Context, session string) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// UpsertByNumber replaces the row carrying the same student number in place,
// or inserts a fresh row when none exists.
func (r *studentRepository) UpsertByNumber(ctx context.Context, student *models.Student) error {
	var existing models.Student
	err := r.db.WithContext(ctx).Where("student_number = ?", student.StudentNumber).First(&existing).Error
	switch {
	case err == nil:
		student.ID = existing.ID
		student.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(student).Error
	case err == gorm.ErrRecordNotFound:
		return r.Create(ctx, student)
	default:
		return err
	}
}

func (r *studentRepository) GetByNumber(ctx context.Context, number string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&student).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(student_number) LIKE ?", like, like)
	}
	if filter.Class != "" {
		query = query.Where("class = ?", filter.Class)
	}
	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}

	var students []models.Student
	if err := query.Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) CountBySession(ctx context.Context, session string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("session = ?", session).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Student{}, id).Error
}

func (r *studentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Student{}).Error
}
