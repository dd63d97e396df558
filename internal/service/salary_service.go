package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// ErrStaffNotFound indicates the referenced staff member does not exist.
var ErrStaffNotFound = errors.New("staff member not found")

// SalaryService records salary disbursements on the append-only ledger.
type SalaryService interface {
	RecordPayment(ctx context.Context, req dto.SalaryPaymentRequest) (models.SalaryPayment, error)
	Receipt(ctx context.Context, payment models.SalaryPayment) (dto.SalaryReceipt, error)
	History(ctx context.Context) ([]models.SalaryPayment, error)
	Delete(ctx context.Context, id uint) error
}

type salaryService struct {
	repo      repository.SalaryPaymentRepository
	staff     repository.StaffRepository
	settings  SettingsService
	sessions  *SessionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSalaryService constructs the salary service.
func NewSalaryService(repo repository.SalaryPaymentRepository, staff repository.StaffRepository, settings SettingsService, sessions *SessionService, validate *validator.Validate, logger zerolog.Logger) SalaryService {
	return &salaryService{
		repo:      repo,
		staff:     staff,
		settings:  settings,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "salary_service").Logger(),
	}
}

// RecordPayment appends one ledger row, copying the staff name at payment
// time. Every save creates a new row; there is no upsert key.
func (s *salaryService) RecordPayment(ctx context.Context, req dto.SalaryPaymentRequest) (models.SalaryPayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SalaryPayment{}, err
	}

	staff, err := s.staff.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SalaryPayment{}, ErrStaffNotFound
		}
		return models.SalaryPayment{}, err
	}

	payment := models.SalaryPayment{
		StaffID:     staff.StaffID,
		StaffName:   staff.Name,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Month:       req.Month,
		Year:        req.Year,
		Session:     s.sessions.Current(),
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		return models.SalaryPayment{}, fmt.Errorf("failed to save salary payment: %w", err)
	}

	s.logger.Info().Str("staff_id", payment.StaffID).Float64("amount", payment.Amount).Msg("salary payment recorded")
	return payment, nil
}

func (s *salaryService) Receipt(ctx context.Context, payment models.SalaryPayment) (dto.SalaryReceipt, error) {
	info, err := s.settings.SchoolInfo(ctx)
	if err != nil {
		return dto.SalaryReceipt{}, err
	}

	return dto.SalaryReceipt{
		Payment:       payment,
		AmountInWords: AmountToWords(payment.Amount),
		SchoolInfo:    info,
	}, nil
}

func (s *salaryService) History(ctx context.Context) ([]models.SalaryPayment, error) {
	return s.repo.List(ctx, repository.SalaryFilter{Session: s.sessions.Current()})
}

func (s *salaryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
