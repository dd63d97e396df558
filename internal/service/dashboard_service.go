package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// DashboardService produces the aggregated home-page figures for the active
// session. An optional redis client caches the aggregates per session.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
	AutoRefresh(ctx context.Context, interval time.Duration, fn func(dto.DashboardStats))
}

type dashboardService struct {
	students   repository.StudentRepository
	staff      repository.StaffRepository
	attendance repository.AttendanceRepository
	salaries   repository.SalaryPaymentRepository
	fees       repository.FeePaymentRepository
	sessions   *SessionService
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewDashboardService builds the dashboard aggregator. cache may be nil.
func NewDashboardService(
	students repository.StudentRepository,
	staff repository.StaffRepository,
	attendance repository.AttendanceRepository,
	salaries repository.SalaryPaymentRepository,
	fees repository.FeePaymentRepository,
	sessions *SessionService,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		students:   students,
		staff:      staff,
		attendance: attendance,
		salaries:   salaries,
		fees:       fees,
		sessions:   sessions,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "dashboard_service").Logger(),
		now:        time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, error) {
	session := s.sessions.Current()
	cacheKey := fmt.Sprintf("dashboard:stats:%s", session)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var stats dto.DashboardStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				stats.CacheHit = true
				s.logger.Debug().Str("session", session).Msg("dashboard cache hit")
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	stats, err := s.compute(ctx, session)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return stats, nil
}

func (s *dashboardService) compute(ctx context.Context, session string) (dto.DashboardStats, error) {
	stats := dto.DashboardStats{Session: session}

	var err error
	if stats.TotalStudents, err = s.students.CountBySession(ctx, session); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.TotalStaff, err = s.staff.CountBySession(ctx, session); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.FeesCollected, err = s.fees.SumForSession(ctx, session); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.SalariesPaid, err = s.salaries.SumForSession(ctx, session); err != nil {
		return dto.DashboardStats{}, err
	}

	// Prefer the running month's average; fall back to the session-wide
	// figure when the month has no attendance yet.
	now := s.now()
	month := now.Month().String()
	year := strconv.Itoa(now.Year())

	avg, ok, err := s.attendance.AverageForMonth(ctx, session, month, year)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	if !ok {
		if avg, err = s.attendance.AverageForSession(ctx, session); err != nil {
			return dto.DashboardStats{}, err
		}
	}
	stats.AverageAttendance = avg

	return stats, nil
}

// AutoRefresh re-reads the aggregates on a fixed interval until ctx is done.
// This is a scheduled re-read, not a subscription; each tick issues the same
// read-only queries a manual refresh would.
func (s *dashboardService) AutoRefresh(ctx context.Context, interval time.Duration, fn func(dto.DashboardStats)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := s.Stats(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("dashboard refresh failed")
				continue
			}
			fn(stats)
		}
	}
}
