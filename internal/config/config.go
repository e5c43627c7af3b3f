// Package config loads and validates application configuration from
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys. Each is also read from the upper-cased environment variable
// of the same name (e.g. database_url from DATABASE_URL).
const (
	keyPort                 = "port"
	keyDatabaseURL          = "database_url"
	keyLogLevel             = "log_level"
	keyCORSOrigins          = "cors_origins"
	keyCalendarHorizonDays  = "calendar_horizon_days"
	keySessionTTL           = "session_ttl"
	keySessionSweepSchedule = "session_sweep_schedule"
	keyMaxBodyBytes         = "max_body_bytes"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string of the place catalog.
	// Optional: when empty the server uses the built-in catalog.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8081"] (Expo web dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CalendarHorizonDays is the number of selectable days offered by the
	// date picker, starting today. Defaults to 30.
	CalendarHorizonDays int

	// SessionTTL is how long a session may sit idle before the sweeper
	// discards it. Defaults to 2h.
	SessionTTL time.Duration

	// SessionSweepSchedule is the cron spec of the idle-session sweeper.
	// Defaults to "@every 1m".
	SessionSweepSchedule string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from the environment and, when configFile is not
// empty, from that YAML file. Environment variables win over the file.
// Returns an error describing every invalid value.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyDatabaseURL, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyCORSOrigins, "http://localhost:8081")
	v.SetDefault(keyCalendarHorizonDays, 30)
	v.SetDefault(keySessionTTL, "2h")
	v.SetDefault(keySessionSweepSchedule, "@every 1m")
	v.SetDefault(keyMaxBodyBytes, 1<<20)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Port:                 v.GetString(keyPort),
		DatabaseURL:          v.GetString(keyDatabaseURL),
		LogLevel:             strings.ToLower(v.GetString(keyLogLevel)),
		CORSOrigins:          splitCSV(v.GetString(keyCORSOrigins)),
		CalendarHorizonDays:  v.GetInt(keyCalendarHorizonDays),
		SessionTTL:           v.GetDuration(keySessionTTL),
		SessionSweepSchedule: v.GetString(keySessionSweepSchedule),
		MaxBodyBytes:         v.GetInt64(keyMaxBodyBytes),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.CalendarHorizonDays < 1 {
		errs = append(errs, errors.New("CALENDAR_HORIZON_DAYS must be a positive integer"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be a positive duration"))
	}
	if strings.TrimSpace(c.SessionSweepSchedule) == "" {
		errs = append(errs, errors.New("SESSION_SWEEP_SCHEDULE is required"))
	}
	if c.MaxBodyBytes < 1 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be a positive integer"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
