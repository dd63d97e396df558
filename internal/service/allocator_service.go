package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/schoolworks/erp-engine/internal/repository"
)

// Identifier prefixes for the three allocation schemes.
const (
	StudentNumberPrefix = "STU"
	StaffIDPrefix       = "STF"
	ReceiptNumberPrefix = "REC"
)

const identifierWidth = 6

// AllocatorService produces the next unused human-readable identifier for a
// scheme. Student and staff numbers are count-based across every session so
// numbers keep increasing when sessions change; receipt numbers derive from
// the maximum existing value instead.
type AllocatorService interface {
	NextStudentNumber(ctx context.Context) (string, error)
	NextStaffID(ctx context.Context) (string, error)
	NextReceiptNumber(ctx context.Context) (string, error)
}

type allocatorService struct {
	students repository.StudentRepository
	staff    repository.StaffRepository
	fees     repository.FeePaymentRepository
	logger   zerolog.Logger
}

// NewAllocatorService constructs the identifier allocator.
func NewAllocatorService(students repository.StudentRepository, staff repository.StaffRepository, fees repository.FeePaymentRepository, logger zerolog.Logger) AllocatorService {
	return &allocatorService{
		students: students,
		staff:    staff,
		fees:     fees,
		logger:   logger.With().Str("component", "allocator_service").Logger(),
	}
}

func (s *allocatorService) NextStudentNumber(ctx context.Context) (string, error) {
	count, err := s.students.CountAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count students: %w", err)
	}
	return formatIdentifier(StudentNumberPrefix, count+1), nil
}

func (s *allocatorService) NextStaffID(ctx context.Context) (string, error) {
	count, err := s.staff.CountAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count staff: %w", err)
	}
	return formatIdentifier(StaffIDPrefix, count+1), nil
}

// NextReceiptNumber scans existing receipt numbers and allocates max+1.
// Values with a non-numeric suffix are ignored rather than treated as
// errors.
func (s *allocatorService) NextReceiptNumber(ctx context.Context) (string, error) {
	numbers, err := s.fees.ReceiptNumbers(ctx, ReceiptNumberPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to scan receipt numbers: %w", err)
	}

	var max int64
	for _, number := range numbers {
		suffix := strings.TrimPrefix(number, ReceiptNumberPrefix)
		value, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			s.logger.Warn().Str("receipt_number", number).Msg("skipping malformed receipt number")
			continue
		}
		if value > max {
			max = value
		}
	}

	return formatIdentifier(ReceiptNumberPrefix, max+1), nil
}

func formatIdentifier(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, identifierWidth, n)
}
