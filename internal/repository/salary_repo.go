package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// SalaryFilter narrows a salary payment listing.
type SalaryFilter struct {
	Session string
	Month   string
}

// SalaryPaymentRepository provides access to the salary ledger. The ledger is
// append-only: there is no upsert key and every save creates a new row.
type SalaryPaymentRepository interface {
	Create(ctx context.Context, payment *models.SalaryPayment) error
	List(ctx context.Context, filter SalaryFilter) ([]models.SalaryPayment, error)
	SumForSession(ctx context.Context, session string) (float64, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type salaryPaymentRepository struct {
	db *gorm.DB
}

// NewSalaryPaymentRepository constructs a salary ledger repository.
func NewSalaryPaymentRepository(db *gorm.DB) SalaryPaymentRepository {
	return &salaryPaymentRepository{db: db}
}

func (r *salaryPaymentRepository) Create(ctx context.Context, payment *models.SalaryPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *salaryPaymentRepository) List(ctx context.Context, filter SalaryFilter) ([]models.SalaryPayment, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryPayment{})

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}

	var payments []models.SalaryPayment
	if err := query.Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *salaryPaymentRepository) SumForSession(ctx context.Context, session string) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&models.SalaryPayment{}).
		Where("session = ?", session).
		Select("SUM(amount)").Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *salaryPaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SalaryPayment{}, id).Error
}

func (r *salaryPaymentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SalaryPayment{}).Error
}
