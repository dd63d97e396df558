package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

// FeeFilter narrows a fee payment listing. Month matches any payment whose
// comma-joined months list contains the value.
type FeeFilter struct {
	Session string
	Month   string
}

// PaidFeeRow is one line of the paid-fees report: the enrolled student joined
// with the total of a matching fully-paid payment.
type PaidFeeRow struct {
	StudentNumber string
	FullName      string
	Class         string
	Section       string
	ParentName    string
	TotalAmount   float64
}

// FeePaymentRepository provides access to the fee ledger.
//
// Create enforces receipt-number uniqueness with a pre-insert check and is
// the path every collection flow uses. Insert writes the row as-is and
// exists for snapshot reconciliation, which must be able to replay ledger
// rows even when the receipt number already occurs.
type FeePaymentRepository interface {
	Create(ctx context.Context, payment *models.FeePayment) error
	Insert(ctx context.Context, payment *models.FeePayment) error
	GetByReceipt(ctx context.Context, receiptNumber string) (models.FeePayment, error)
	ReceiptNumbers(ctx context.Context, prefix string) ([]string, error)
	List(ctx context.Context, filter FeeFilter) ([]models.FeePayment, error)
	SumForSession(ctx context.Context, session string) (float64, error)
	PaidRows(ctx context.Context, session, month, class, section string) ([]PaidFeeRow, error)
	PaidStudentNumbers(ctx context.Context, session, month string) ([]string, error)
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
}

type feePaymentRepository struct {
	db *gorm.DB
}

// NewFeePaymentRepository constructs a fee ledger repository.
func NewFeePaymentRepository(db *gorm.DB) FeePaymentRepository {
	return &feePaymentRepository{db: db}
}

func (r *feePaymentRepository) Create(ctx context.Context, payment *models.FeePayment) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FeePayment{}).
		Where("receipt_number = ?", payment.ReceiptNumber).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateKey
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *feePaymentRepository) Insert(ctx context.Context, payment *models.FeePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *feePaymentRepository) GetByReceipt(ctx context.Context, receiptNumber string) (models.FeePayment, error) {
	var payment models.FeePayment
	err := r.db.WithContext(ctx).Where("receipt_number = ?", receiptNumber).First(&payment).Error
	if err != nil {
		return models.FeePayment{}, err
	}
	return payment, nil
}

func (r *feePaymentRepository) ReceiptNumbers(ctx context.Context, prefix string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.FeePayment{}).
		Where("receipt_number LIKE ?", prefix+"%").
		Pluck("receipt_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *feePaymentRepository) List(ctx context.Context, filter FeeFilter) ([]models.FeePayment, error) {
	query := r.db.WithContext(ctx).Model(&models.FeePayment{})

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Month != "" {
		query = query.Where("months LIKE ?", "%"+filter.Month+"%")
	}

	var payments []models.FeePayment
	if err := query.Order("id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *feePaymentRepository) SumForSession(ctx context.Context, session string) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&models.FeePayment{}).
		Where("session = ?", session).
		Select("SUM(total_amount)").Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *feePaymentRepository) PaidRows(ctx context.Context, session, month, class, section string) ([]PaidFeeRow, error) {
	query := r.db.WithContext(ctx).
		Table("students s").
		Select("DISTINCT s.student_number, s.full_name, s.class, s.section, s.parent_name, f.total_amount").
		Joins("INNER JOIN fee_payments f ON s.student_number = f.student_number").
		Where("f.months LIKE ? AND f.payment_status = ? AND s.session = ?",
			"%"+month+"%", models.PaymentStatusFullPaid, session)

	if class != "" {
		query = query.Where("s.class = ?", class)
	}
	if section != "" {
		query = query.Where("s.section = ?", section)
	}

	var rows []PaidFeeRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *feePaymentRepository) PaidStudentNumbers(ctx context.Context, session, month string) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&models.FeePayment{}).
		Distinct("student_number").
		Where("months LIKE ? AND payment_status = ? AND session = ?",
			"%"+month+"%", models.PaymentStatusFullPaid, session).
		Pluck("student_number", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *feePaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FeePayment{}, id).Error
}

func (r *feePaymentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.FeePayment{}).Error
}
