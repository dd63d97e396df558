package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/repository"
)

var (
	// ErrDuplicateReceiptNumber indicates the chosen receipt number already
	// exists; the caller recovers by regenerating.
	ErrDuplicateReceiptNumber = errors.New("receipt number already exists")
	// ErrStudentNotFound indicates the referenced student does not exist in
	// the active session.
	ErrStudentNotFound = errors.New("student not found")
)

// FeeService records fee collections and answers the paid/unpaid reports.
type FeeService interface {
	RecordPayment(ctx context.Context, req dto.FeePaymentRequest) (models.FeePayment, error)
	Receipt(ctx context.Context, receiptNumber string) (dto.FeeReceipt, error)
	History(ctx context.Context) ([]models.FeePayment, error)
	PaidStudents(ctx context.Context, query dto.FeeStatusQuery) ([]dto.FeeStatusRow, error)
	UnpaidStudents(ctx context.Context, query dto.FeeStatusQuery) ([]dto.FeeStatusRow, error)
	Delete(ctx context.Context, id uint) error
}

type feeService struct {
	repo      repository.FeePaymentRepository
	students  repository.StudentRepository
	settings  SettingsService
	allocator AllocatorService
	sessions  *SessionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFeeService constructs the fee service.
func NewFeeService(repo repository.FeePaymentRepository, students repository.StudentRepository, settings SettingsService, allocator AllocatorService, sessions *SessionService, validate *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		repo:      repo,
		students:  students,
		settings:  settings,
		allocator: allocator,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "fee_service").Logger(),
	}
}

// RecordPayment appends one ledger row. Student name/class/section/parent are
// copied from the enrollment row at payment time and never updated again.
// The total is always recomputed from the seven components.
func (s *feeService) RecordPayment(ctx context.Context, req dto.FeePaymentRequest) (models.FeePayment, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.FeePayment{}, err
	}

	student, err := s.students.GetByNumber(ctx, req.StudentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FeePayment{}, ErrStudentNotFound
		}
		return models.FeePayment{}, err
	}

	receipt := strings.TrimSpace(req.ReceiptNumber)
	if receipt == "" {
		allocated, err := s.allocator.NextReceiptNumber(ctx)
		if err != nil {
			return models.FeePayment{}, err
		}
		receipt = allocated
	}

	total := TotalFee(FeeComponents{
		Tuition:     req.TuitionFee,
		Lab:         req.LabFee,
		Sport:       req.SportFee,
		Computer:    req.ComputerFee,
		Maintenance: req.MaintenanceFee,
		Exam:        req.ExamFee,
		Late:        req.LateFee,
	})

	payment := models.FeePayment{
		ReceiptNumber:  receipt,
		StudentNumber:  student.StudentNumber,
		StudentName:    student.FullName,
		Class:          student.Class,
		Section:        student.Section,
		ParentName:     student.ParentName,
		Months:         strings.Join(req.Months, ", "),
		PaymentDate:    req.PaymentDate,
		TuitionFee:     req.TuitionFee,
		LabFee:         req.LabFee,
		SportFee:       req.SportFee,
		ComputerFee:    req.ComputerFee,
		MaintenanceFee: req.MaintenanceFee,
		ExamFee:        req.ExamFee,
		LateFee:        req.LateFee,
		TotalAmount:    total,
		PaymentMode:    req.PaymentMode,
		PaymentStatus:  req.PaymentStatus,
		Session:        s.sessions.Current(),
	}

	if err := s.repo.Create(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.FeePayment{}, ErrDuplicateReceiptNumber
		}
		return models.FeePayment{}, fmt.Errorf("failed to save fee payment: %w", err)
	}

	s.logger.Info().Str("receipt_number", payment.ReceiptNumber).Float64("total", total).Msg("fee payment recorded")
	return payment, nil
}

// Receipt assembles the renderer-ready payload for a stored payment.
func (s *feeService) Receipt(ctx context.Context, receiptNumber string) (dto.FeeReceipt, error) {
	payment, err := s.repo.GetByReceipt(ctx, receiptNumber)
	if err != nil {
		return dto.FeeReceipt{}, err
	}

	info, err := s.settings.SchoolInfo(ctx)
	if err != nil {
		return dto.FeeReceipt{}, err
	}

	return dto.FeeReceipt{
		Payment:       payment,
		AmountInWords: AmountToWords(payment.TotalAmount),
		SchoolInfo:    info,
	}, nil
}

func (s *feeService) History(ctx context.Context) ([]models.FeePayment, error) {
	return s.repo.List(ctx, repository.FeeFilter{Session: s.sessions.Current()})
}

func (s *feeService) PaidStudents(ctx context.Context, query dto.FeeStatusQuery) ([]dto.FeeStatusRow, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	rows, err := s.repo.PaidRows(ctx, s.sessions.Current(), query.Month, normalizeFilter(query.Class), normalizeFilter(query.Section))
	if err != nil {
		return nil, err
	}

	result := make([]dto.FeeStatusRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.FeeStatusRow{
			StudentNumber: row.StudentNumber,
			FullName:      row.FullName,
			Class:         row.Class,
			Section:       row.Section,
			ParentName:    row.ParentName,
			TotalAmount:   row.TotalAmount,
		})
	}
	return result, nil
}

// UnpaidStudents lists enrolled students with no fully-paid payment covering
// the month.
func (s *feeService) UnpaidStudents(ctx context.Context, query dto.FeeStatusQuery) ([]dto.FeeStatusRow, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	session := s.sessions.Current()
	students, err := s.students.List(ctx, repository.StudentFilter{
		Session: session,
		Class:   normalizeFilter(query.Class),
		Section: normalizeFilter(query.Section),
	})
	if err != nil {
		return nil, err
	}

	paidNumbers, err := s.repo.PaidStudentNumbers(ctx, session, query.Month)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]struct{}, len(paidNumbers))
	for _, number := range paidNumbers {
		paid[number] = struct{}{}
	}

	result := make([]dto.FeeStatusRow, 0, len(students))
	for _, student := range students {
		if _, ok := paid[student.StudentNumber]; ok {
			continue
		}
		result = append(result, dto.FeeStatusRow{
			StudentNumber: student.StudentNumber,
			FullName:      student.FullName,
			Class:         student.Class,
			Section:       student.Section,
			ParentName:    student.ParentName,
		})
	}
	return result, nil
}

func (s *feeService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// normalizeFilter treats the UI's "All" choice as no filter.
func normalizeFilter(value string) string {
	if value == "All" {
		return ""
	}
	return value
}
