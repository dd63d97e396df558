package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// AttendanceService saves attendance sheets and answers attendance queries
// for the active session.
type AttendanceService interface {
	SaveSheet(ctx context.Context, sheet dto.AttendanceSheet) (int, error)
	ListForMonth(ctx context.Context, month, year string) ([]models.AttendanceRecord, error)
	SheetAverage(ctx context.Context, sheet dto.AttendanceSheet) float64
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	students  repository.StudentRepository
	sessions  *SessionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, students repository.StudentRepository, sessions *SessionService, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		students:  students,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

// SaveSheet upserts one record per entry keyed by (student_number, month,
// year, session). A second save for the same key updates the stored row in
// place. Entries whose student number resolves to nothing are skipped, not
// rejected. Returns the number of rows saved.
func (s *attendanceService) SaveSheet(ctx context.Context, sheet dto.AttendanceSheet) (int, error) {
	if err := s.validator.Struct(sheet); err != nil {
		return 0, err
	}

	session := s.sessions.Current()
	saved := 0

	for _, entry := range sheet.Entries {
		if _, err := s.students.GetByNumber(ctx, entry.StudentNumber); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn().Str("student_number", entry.StudentNumber).Msg("skipping attendance for unknown student")
				continue
			}
			return saved, err
		}

		record := models.AttendanceRecord{
			StudentNumber: entry.StudentNumber,
			Class:         sheet.Class,
			Section:       sheet.Section,
			Month:         sheet.Month,
			Year:          sheet.Year,
			WorkingDays:   sheet.WorkingDays,
			DaysPresent:   entry.DaysPresent,
			Percentage:    AttendancePercentage(entry.DaysPresent, sheet.WorkingDays),
			Session:       session,
		}

		if err := s.repo.UpsertByKey(ctx, &record); err != nil {
			return saved, err
		}
		saved++
	}

	s.logger.Info().Int("saved", saved).Str("month", sheet.Month).Str("year", sheet.Year).Msg("attendance sheet saved")
	return saved, nil
}

func (s *attendanceService) ListForMonth(ctx context.Context, month, year string) ([]models.AttendanceRecord, error) {
	return s.repo.List(ctx, repository.AttendanceFilter{
		Session: s.sessions.Current(),
		Month:   month,
		Year:    year,
	})
}

// SheetAverage computes the class average over the sheet as edited, before
// anything is persisted.
func (s *attendanceService) SheetAverage(ctx context.Context, sheet dto.AttendanceSheet) float64 {
	percentages := make([]float64, 0, len(sheet.Entries))
	for _, entry := range sheet.Entries {
		percentages = append(percentages, AttendancePercentage(entry.DaysPresent, sheet.WorkingDays))
	}
	return ClassAverage(percentages)
}
