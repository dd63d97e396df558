package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/config"
	"github.com/schoolworks/erp-engine/internal/repository"
	"github.com/schoolworks/erp-engine/internal/service"
)

// engine bundles the wired services the CLI commands operate on.
type engine struct {
	sessions   *service.SessionService
	settings   service.SettingsService
	backup     service.BackupService
	restore    service.RestoreService
	dashboard  service.DashboardService
	students   service.StudentService
	staff      service.StaffService
	attendance service.AttendanceService
	fees       service.FeeService
	salaries   service.SalaryService
}

func buildEngine(ctx context.Context, cfg config.Config, db *gorm.DB, cache *redis.Client, logger zerolog.Logger) (*engine, error) {
	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	salaryRepo := repository.NewSalaryPaymentRepository(db)
	feeRepo := repository.NewFeePaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	runRepo := repository.NewBackupRunRepository(db)

	settingsService := service.NewSettingsService(settingRepo, logger)
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed default settings: %w", err)
	}

	sessionService, err := service.NewSessionService(ctx, settingRepo, cfg.DefaultSession, logger)
	if err != nil {
		return nil, err
	}

	backupService := service.NewBackupService(
		studentRepo, staffRepo, attendanceRepo, salaryRepo, feeRepo,
		runRepo, settingsService, sessionService, logger)

	restoreService, err := service.NewRestoreService(
		studentRepo, staffRepo, attendanceRepo, salaryRepo, feeRepo,
		settingsService, sessionService, logger)
	if err != nil {
		return nil, err
	}

	dashboardService := service.NewDashboardService(
		studentRepo, staffRepo, attendanceRepo, salaryRepo, feeRepo,
		sessionService, cache, cfg.DashboardCacheTTL, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())
	allocator := service.NewAllocatorService(studentRepo, staffRepo, feeRepo, logger)

	return &engine{
		sessions:   sessionService,
		settings:   settingsService,
		backup:     backupService,
		restore:    restoreService,
		dashboard:  dashboardService,
		students:   service.NewStudentService(studentRepo, allocator, sessionService, validate, logger),
		staff:      service.NewStaffService(staffRepo, allocator, sessionService, validate, logger),
		attendance: service.NewAttendanceService(attendanceRepo, studentRepo, sessionService, validate, logger),
		fees:       service.NewFeeService(feeRepo, studentRepo, settingsService, allocator, sessionService, validate, logger),
		salaries:   service.NewSalaryService(salaryRepo, staffRepo, settingsService, sessionService, validate, logger),
	}, nil
}
