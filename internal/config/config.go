package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the record engine.
type Config struct {
	AppName                  string
	AppEnv                   string
	DatabasePath             string
	RedisURL                 string
	DefaultSession           string
	BackupDir                string
	DashboardCacheTTL        time.Duration
	DashboardRefreshInterval time.Duration
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ERP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "School ERP Engine")
	v.SetDefault("app.env", "development")
	v.SetDefault("database.path", "school_erp.db")
	v.SetDefault("session.default", "2024-25")
	v.SetDefault("backup.dir", ".")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("dashboard.refresh_interval", "30s")

	ttl, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	refresh, err := time.ParseDuration(v.GetString("dashboard.refresh_interval"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard refresh interval: %w", err)
	}

	cfg := Config{
		AppName:                  v.GetString("app.name"),
		AppEnv:                   v.GetString("app.env"),
		DatabasePath:             v.GetString("database.path"),
		RedisURL:                 v.GetString("redis.url"),
		DefaultSession:           v.GetString("session.default"),
		BackupDir:                v.GetString("backup.dir"),
		DashboardCacheTTL:        ttl,
		DashboardRefreshInterval: refresh,
	}

	if cfg.DatabasePath == "" {
		return Config{}, fmt.Errorf("database path must not be empty")
	}

	return cfg, nil
}
