package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/observability"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// ConflictPolicy chooses how a snapshot is merged into the store.
type ConflictPolicy string

// Conflict policies. Override upserts by natural key where one exists and
// appends ledger rows unconditionally, so re-importing the same document
// duplicates ledger data. Reset clears every collection first; only Reset
// avoids ledger duplication.
const (
	PolicyOverride ConflictPolicy = "override"
	PolicyReset    ConflictPolicy = "reset"
)

// ErrMalformedSnapshot indicates the source document is not a usable
// snapshot: not JSON, or missing required top-level fields.
var ErrMalformedSnapshot = errors.New("malformed snapshot document")

//go:embed snapshot_schema.json
var snapshotSchemaJSON string

// RestoreService replays snapshot documents back into the store. Records are
// processed independently: a bad record is skipped and counted, never
// aborting the batch. Only unreadable or malformed documents fail the whole
// restore, and then the store is left untouched.
type RestoreService interface {
	RestoreSnapshot(ctx context.Context, path string, policy ConflictPolicy) (dto.RestoreSummary, error)
	RestoreStudents(ctx context.Context, path string, filter dto.StudentRestoreFilter) (int, error)
	RestoreStaff(ctx context.Context, path string) (int, error)
}

type restoreService struct {
	students   repository.StudentRepository
	staff      repository.StaffRepository
	attendance repository.AttendanceRepository
	salaries   repository.SalaryPaymentRepository
	fees       repository.FeePaymentRepository
	settings   SettingsService
	sessions   *SessionService
	schema     *jsonschema.Schema
	logger     zerolog.Logger
}

// NewRestoreService constructs the snapshot reconciler.
func NewRestoreService(
	students repository.StudentRepository,
	staff repository.StaffRepository,
	attendance repository.AttendanceRepository,
	salaries repository.SalaryPaymentRepository,
	fees repository.FeePaymentRepository,
	settings SettingsService,
	sessions *SessionService,
	logger zerolog.Logger,
) (RestoreService, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("snapshot_schema.json", strings.NewReader(snapshotSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load snapshot schema: %w", err)
	}
	schema, err := compiler.Compile("snapshot_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile snapshot schema: %w", err)
	}

	return &restoreService{
		students:   students,
		staff:      staff,
		attendance: attendance,
		salaries:   salaries,
		fees:       fees,
		settings:   settings,
		sessions:   sessions,
		schema:     schema,
		logger:     logger.With().Str("component", "restore_service").Logger(),
	}, nil
}

func (s *restoreService) RestoreSnapshot(ctx context.Context, path string, policy ConflictPolicy) (dto.RestoreSummary, error) {
	if policy == "" {
		policy = PolicyOverride
	}

	data, err := readSnapshotFile(path)
	if err != nil {
		return dto.RestoreSummary{}, err
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return dto.RestoreSummary{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := s.schema.Validate(document); err != nil {
		return dto.RestoreSummary{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var snapshot dto.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return dto.RestoreSummary{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	if policy == PolicyReset {
		if err := s.resetCollections(ctx); err != nil {
			return dto.RestoreSummary{}, fmt.Errorf("failed to reset store: %w", err)
		}
	}

	if err := s.settings.UpdateSchoolInfo(ctx, snapshot.SchoolInfo); err != nil {
		return dto.RestoreSummary{}, fmt.Errorf("failed to restore school info: %w", err)
	}

	var summary dto.RestoreSummary

	for i := range snapshot.Students {
		student := snapshot.Students[i]
		student.ID = 0
		if err := s.students.UpsertByNumber(ctx, &student); err != nil {
			s.skip(&summary, "students", err)
			continue
		}
		summary.Students++
	}
	observability.RestoreApplied().WithLabelValues("students").Add(float64(summary.Students))

	for i := range snapshot.Staff {
		member := snapshot.Staff[i]
		member.ID = 0
		if err := s.staff.UpsertByStaffID(ctx, &member); err != nil {
			s.skip(&summary, "staff", err)
			continue
		}
		summary.Staff++
	}
	observability.RestoreApplied().WithLabelValues("staff").Add(float64(summary.Staff))

	// The store declares no attendance constraint, so the composite-key
	// comparison happens here before insert.
	for i := range snapshot.Attendance {
		record := snapshot.Attendance[i]
		record.ID = 0
		if err := s.attendance.UpsertByKey(ctx, &record); err != nil {
			s.skip(&summary, "attendance", err)
			continue
		}
		summary.Attendance++
	}
	observability.RestoreApplied().WithLabelValues("attendance").Add(float64(summary.Attendance))

	// Ledger rows have no upsert key and are replayed verbatim.
	for i := range snapshot.SalaryPayments {
		payment := snapshot.SalaryPayments[i]
		payment.ID = 0
		if err := s.salaries.Create(ctx, &payment); err != nil {
			s.skip(&summary, "salary_payments", err)
			continue
		}
		summary.SalaryPayments++
	}
	observability.RestoreApplied().WithLabelValues("salary_payments").Add(float64(summary.SalaryPayments))

	for i := range snapshot.FeePayments {
		payment := snapshot.FeePayments[i]
		payment.ID = 0
		if err := s.fees.Insert(ctx, &payment); err != nil {
			s.skip(&summary, "fee_payments", err)
			continue
		}
		summary.FeePayments++
	}
	observability.RestoreApplied().WithLabelValues("fee_payments").Add(float64(summary.FeePayments))

	s.logger.Info().
		Str("policy", string(policy)).
		Int("applied", summary.Total()).
		Int("skipped", summary.Skipped).
		Msg("snapshot restored")
	return summary, nil
}

// RestoreStudents replays a bare student array. Rows that fail the filter
// are skipped, and every restored row is stamped with the caller's active
// session rather than the session embedded in the document.
func (s *restoreService) RestoreStudents(ctx context.Context, path string, filter dto.StudentRestoreFilter) (int, error) {
	data, err := readSnapshotFile(path)
	if err != nil {
		return 0, err
	}

	var students []models.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	session := s.sessions.Current()
	restored := 0
	for i := range students {
		student := students[i]
		if !filter.Matches(student) {
			continue
		}
		student.ID = 0
		student.Session = session
		if err := s.students.UpsertByNumber(ctx, &student); err != nil {
			s.logger.Warn().Err(err).Str("student_number", student.StudentNumber).Msg("skipping student row")
			observability.RestoreSkipped().WithLabelValues("students").Inc()
			continue
		}
		restored++
	}

	observability.RestoreApplied().WithLabelValues("students").Add(float64(restored))
	s.logger.Info().Int("restored", restored).Msg("student backup restored")
	return restored, nil
}

// RestoreStaff replays a bare staff array, stamping rows with the active
// session.
func (s *restoreService) RestoreStaff(ctx context.Context, path string) (int, error) {
	data, err := readSnapshotFile(path)
	if err != nil {
		return 0, err
	}

	var members []models.Staff
	if err := json.Unmarshal(data, &members); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	session := s.sessions.Current()
	restored := 0
	for i := range members {
		member := members[i]
		member.ID = 0
		member.Session = session
		if err := s.staff.UpsertByStaffID(ctx, &member); err != nil {
			s.logger.Warn().Err(err).Str("staff_id", member.StaffID).Msg("skipping staff row")
			observability.RestoreSkipped().WithLabelValues("staff").Inc()
			continue
		}
		restored++
	}

	observability.RestoreApplied().WithLabelValues("staff").Add(float64(restored))
	s.logger.Info().Int("restored", restored).Msg("staff backup restored")
	return restored, nil
}

func (s *restoreService) resetCollections(ctx context.Context) error {
	if err := s.students.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.staff.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.attendance.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.salaries.DeleteAll(ctx); err != nil {
		return err
	}
	return s.fees.DeleteAll(ctx)
}

func (s *restoreService) skip(summary *dto.RestoreSummary, collection string, err error) {
	summary.Skipped++
	observability.RestoreSkipped().WithLabelValues(collection).Inc()
	s.logger.Warn().Err(err).Str("collection", collection).Msg("skipping snapshot record")
}

// readSnapshotFile loads the document and rejects anything that is clearly
// not a JSON text file before parsing.
func readSnapshotFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("application/json") && !strings.HasPrefix(mtype.String(), "text/") {
		return nil, fmt.Errorf("%w: unexpected file type %s", ErrMalformedSnapshot, mtype.String())
	}

	return data, nil
}
