package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/schoolworks/erp-engine/internal/database"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// testEnv wires real repositories over a private in-memory store so service
// tests exercise the same query paths production uses.
type testEnv struct {
	db         *gorm.DB
	students   repository.StudentRepository
	staff      repository.StaffRepository
	attendance repository.AttendanceRepository
	salaries   repository.SalaryPaymentRepository
	fees       repository.FeePaymentRepository
	settingsR  repository.SettingRepository
	runs       repository.BackupRunRepository
	settings   SettingsService
	sessions   *SessionService
	validate   *validator.Validate
	logger     zerolog.Logger
}

// testDBSeq keeps DSNs distinct when one test opens several stores, such as
// a restore source and target.
var testDBSeq atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := zerolog.Nop()
	settingRepo := repository.NewSettingRepository(db)

	settings := NewSettingsService(settingRepo, log)
	require.NoError(t, settings.EnsureDefaults(context.Background()))

	sessions, err := NewSessionService(context.Background(), settingRepo, "", log)
	require.NoError(t, err)

	return &testEnv{
		db:         db,
		students:   repository.NewStudentRepository(db),
		staff:      repository.NewStaffRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		salaries:   repository.NewSalaryPaymentRepository(db),
		fees:       repository.NewFeePaymentRepository(db),
		settingsR:  settingRepo,
		runs:       repository.NewBackupRunRepository(db),
		settings:   settings,
		sessions:   sessions,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     log,
	}
}

func (e *testEnv) addStudent(t *testing.T, number, name, class, section, session string) models.Student {
	t.Helper()
	student := models.Student{
		StudentNumber: number,
		FullName:      name,
		RollNumber:    "1",
		Class:         class,
		Section:       section,
		ParentName:    "Parent of " + name,
		Session:       session,
	}
	require.NoError(t, e.students.Create(context.Background(), &student))
	return student
}

func (e *testEnv) addStaff(t *testing.T, staffID, name, session string) models.Staff {
	t.Helper()
	member := models.Staff{
		StaffID:     staffID,
		Name:        name,
		Phone:       "9000000000",
		Designation: "Teacher",
		Salary:      30000,
		Session:     session,
	}
	require.NoError(t, e.staff.Create(context.Background(), &member))
	return member
}
