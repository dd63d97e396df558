package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "School ERP Engine", cfg.AppName)
	require.Equal(t, "school_erp.db", cfg.DatabasePath)
	require.Equal(t, "2024-25", cfg.DefaultSession)
	require.Equal(t, ".", cfg.BackupDir)
	require.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	require.Equal(t, 30*time.Second, cfg.DashboardRefreshInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ERP_DATABASE_PATH", "/tmp/erp-test.db")
	t.Setenv("ERP_SESSION_DEFAULT", "2026-27")
	t.Setenv("ERP_DASHBOARD_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "/tmp/erp-test.db", cfg.DatabasePath)
	require.Equal(t, "2026-27", cfg.DefaultSession)
	require.Equal(t, 90*time.Second, cfg.DashboardCacheTTL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ERP_DASHBOARD_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
