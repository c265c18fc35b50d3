package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Auth
		Loans
		Recommend
		Tasks
		Maintenance
		Metrics
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Log struct {
		Level  string // debug, info, warn, error, off
		Format string // json or console
		SQL    bool   // Log every statement at debug level
	}
	Auth struct {
		BcryptCost        int
		MinPasswordLength int
	}
	Loans struct {
		DefaultDays int
		AllowedDays []int
	}
	Recommend struct {
		Limit         int
		TopCategories int
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Maintenance struct {
		Enabled  bool
		Schedule string        // Cron format: "0 3 * * *" = daily at 03:00
		Expiry   time.Duration // Age after which pending reservations expire, 0 disables
	}
	Metrics struct {
		Enabled bool
	}
	Demo struct {
		Enabled bool // Reject writes except login
	}
)

// parseDays reads a comma separated list such as "15,30". Invalid or
// non-positive entries are skipped.
func parseDays(raw string) []int {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		days = append(days, n)
	}
	if len(days) == 0 {
		return append([]int(nil), DefaultLoanAllowedDays...)
	}
	return days
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("log_sql", false)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_min_password_length", 6)

	v.SetDefault("loan_default_days", DefaultLoanDays)
	v.SetDefault("loan_allowed_days", "15,30")

	v.SetDefault("recommend_limit", 5)
	v.SetDefault("recommend_top_categories", 3)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("maintenance_enabled", false)
	v.SetDefault("maintenance_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("reservation_expiry", "168h")        // 7 days

	v.SetDefault("metrics_enabled", true)
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			SQL:    v.GetBool("LOG_SQL"),
		},
		Auth: Auth{
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
		},
		Loans: Loans{
			DefaultDays: v.GetInt("LOAN_DEFAULT_DAYS"),
			AllowedDays: parseDays(v.GetString("LOAN_ALLOWED_DAYS")),
		},
		Recommend: Recommend{
			Limit:         v.GetInt("RECOMMEND_LIMIT"),
			TopCategories: v.GetInt("RECOMMEND_TOP_CATEGORIES"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
			Expiry:   v.GetDuration("RESERVATION_EXPIRY"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
