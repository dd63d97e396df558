package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/observability"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// BackupScope selects which rows an export covers.
type BackupScope string

// Export scopes. SpecificMonth filters only the time-stamped ledger
// collections; student and staff rows degrade to current-session scope in
// that mode, matching what existing backups encode.
const (
	ScopeComplete       BackupScope = "Complete Backup"
	ScopeCurrentSession BackupScope = "Current Session Only"
	ScopeSpecificMonth  BackupScope = "Specific Month"
)

const (
	backupDateLayout     = "2006-01-02 15:04:05"
	backupFileTimeLayout = "20060102_150405"
)

// BackupService serializes store contents into portable snapshot documents.
// It only reads; it never mutates records or the active session.
type BackupService interface {
	BuildSnapshot(ctx context.Context, scope BackupScope, month string) (dto.Snapshot, error)
	Export(ctx context.Context, scope BackupScope, month, dir string) (dto.ExportResult, error)
	ExportStudents(ctx context.Context, dir string) (string, int, error)
	ExportStaff(ctx context.Context, dir string) (string, int, error)
	History(ctx context.Context, limit int) ([]models.BackupRun, error)
}

type backupService struct {
	students   repository.StudentRepository
	staff      repository.StaffRepository
	attendance repository.AttendanceRepository
	salaries   repository.SalaryPaymentRepository
	fees       repository.FeePaymentRepository
	runs       repository.BackupRunRepository
	settings   SettingsService
	sessions   *SessionService
	logger     zerolog.Logger
	now        func() time.Time
}

// NewBackupService constructs the snapshot exporter.
func NewBackupService(
	students repository.StudentRepository,
	staff repository.StaffRepository,
	attendance repository.AttendanceRepository,
	salaries repository.SalaryPaymentRepository,
	fees repository.FeePaymentRepository,
	runs repository.BackupRunRepository,
	settings SettingsService,
	sessions *SessionService,
	logger zerolog.Logger,
) BackupService {
	return &backupService{
		students:   students,
		staff:      staff,
		attendance: attendance,
		salaries:   salaries,
		fees:       fees,
		runs:       runs,
		settings:   settings,
		sessions:   sessions,
		logger:     logger.With().Str("component", "backup_service").Logger(),
		now:        time.Now,
	}
}

func (s *backupService) BuildSnapshot(ctx context.Context, scope BackupScope, month string) (dto.Snapshot, error) {
	session := s.sessions.Current()

	info, err := s.settings.SchoolInfo(ctx)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read school info: %w", err)
	}

	snapshot := dto.Snapshot{
		BackupType: string(scope),
		BackupDate: s.now().Format(backupDateLayout),
		Session:    session,
		SchoolInfo: info,
	}

	// Student and staff rows have no month dimension, so SpecificMonth
	// behaves as CurrentSessionOnly for them.
	rosterSession := session
	if scope == ScopeComplete {
		rosterSession = ""
	}

	snapshot.Students, err = s.students.List(ctx, repository.StudentFilter{Session: rosterSession})
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read students: %w", err)
	}

	snapshot.Staff, err = s.staff.List(ctx, repository.StaffFilter{Session: rosterSession})
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read staff: %w", err)
	}

	attendanceFilter := repository.AttendanceFilter{Session: rosterSession}
	salaryFilter := repository.SalaryFilter{Session: rosterSession}
	feeFilter := repository.FeeFilter{Session: rosterSession}
	if scope == ScopeSpecificMonth {
		attendanceFilter.Month = month
		salaryFilter.Month = month
		feeFilter.Month = month
	}

	snapshot.Attendance, err = s.attendance.List(ctx, attendanceFilter)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read attendance: %w", err)
	}

	snapshot.SalaryPayments, err = s.salaries.List(ctx, salaryFilter)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read salary payments: %w", err)
	}

	snapshot.FeePayments, err = s.fees.List(ctx, feeFilter)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("failed to read fee payments: %w", err)
	}

	return snapshot, nil
}

// Export writes a snapshot document into dir and records the run.
func (s *backupService) Export(ctx context.Context, scope BackupScope, month, dir string) (dto.ExportResult, error) {
	snapshot, err := s.BuildSnapshot(ctx, scope, month)
	if err != nil {
		return dto.ExportResult{}, err
	}

	filename := fmt.Sprintf("school_erp_backup_%s.json", s.now().Format(backupFileTimeLayout))
	path := filepath.Join(dir, filename)

	if err := writeJSONFile(path, snapshot); err != nil {
		return dto.ExportResult{}, err
	}

	counts := map[string]int{
		"students":        len(snapshot.Students),
		"staff":           len(snapshot.Staff),
		"attendance":      len(snapshot.Attendance),
		"salary_payments": len(snapshot.SalaryPayments),
		"fee_payments":    len(snapshot.FeePayments),
	}

	result := dto.ExportResult{
		RunID:  uuid.NewString(),
		Path:   path,
		Counts: counts,
	}

	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return dto.ExportResult{}, fmt.Errorf("failed to encode run counts: %w", err)
	}

	run := models.BackupRun{
		RunID:    result.RunID,
		Scope:    string(scope),
		FilePath: path,
		Session:  snapshot.Session,
		Counts:   datatypes.JSON(countsJSON),
	}
	if err := s.runs.Create(ctx, &run); err != nil {
		return dto.ExportResult{}, fmt.Errorf("failed to record backup run: %w", err)
	}

	observability.BackupRuns().WithLabelValues(string(scope)).Inc()
	s.logger.Info().Str("run_id", result.RunID).Str("path", path).Msg("backup created")
	return result, nil
}

// ExportStudents writes the current session's students as a bare array,
// without the snapshot metadata wrapper.
func (s *backupService) ExportStudents(ctx context.Context, dir string) (string, int, error) {
	session := s.sessions.Current()
	students, err := s.students.List(ctx, repository.StudentFilter{Session: session})
	if err != nil {
		return "", 0, fmt.Errorf("failed to read students: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("students_backup_%s.json", session))
	if err := writeJSONFile(path, students); err != nil {
		return "", 0, err
	}

	s.logger.Info().Str("path", path).Int("count", len(students)).Msg("student backup created")
	return path, len(students), nil
}

// ExportStaff writes the current session's staff as a bare array.
func (s *backupService) ExportStaff(ctx context.Context, dir string) (string, int, error) {
	session := s.sessions.Current()
	staff, err := s.staff.List(ctx, repository.StaffFilter{Session: session})
	if err != nil {
		return "", 0, fmt.Errorf("failed to read staff: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("staff_backup_%s.json", session))
	if err := writeJSONFile(path, staff); err != nil {
		return "", 0, err
	}

	s.logger.Info().Str("path", path).Int("count", len(staff)).Msg("staff backup created")
	return path, len(staff), nil
}

func (s *backupService) History(ctx context.Context, limit int) ([]models.BackupRun, error) {
	return s.runs.List(ctx, limit)
}

func writeJSONFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
