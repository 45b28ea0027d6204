// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, NEIS API access, school identity, and cache settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// NEIS Open API Configuration
	NeisAPIKey        string // API key for open.neis.go.kr
	NeisBaseURL       string // Base URL override (default: https://open.neis.go.kr/hub)
	EducationOffice   string // ATPT_OFCDC_SC_CODE (교육청 코드)
	SchoolCode        string // SD_SCHUL_CODE (표준학교코드)
	TimetableEndpoint string // hisTimetable (high school) or misTimetable (middle school)

	// Class identity used when the payload carries no grade/class
	DefaultGrade string
	DefaultClass string

	// Kakao Skill Configuration
	SkillSecret string // Shared secret for X-Kakao-Signature verification (empty = disabled)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir  string        // Directory holding static JSON data files
	CacheTTL time.Duration // TTL for the NEIS response cache
	Timezone string        // IANA timezone identifier (default: Asia/Seoul)

	// Fetch Configuration
	FetchTimeout    time.Duration
	FetchMaxRetries int

	// Per-user throttling (0 burst = disabled)
	UserRateLimitBurst    int
	UserRateLimitInterval time.Duration // time to regain one request

	// Error tracking (Better Stack via Sentry SDK)
	SentryToken string
	SentryHost  string

	// Log shipping
	BetterstackToken string
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// NEIS Open API Configuration
		NeisAPIKey:        getEnv("NEIS_API_KEY", ""),
		NeisBaseURL:       getEnv("NEIS_BASE_URL", "https://open.neis.go.kr/hub"),
		EducationOffice:   getEnv("NEIS_EDU_OFFICE_CODE", ""),
		SchoolCode:        getEnv("NEIS_SCHOOL_CODE", ""),
		TimetableEndpoint: getEnv("NEIS_TIMETABLE_ENDPOINT", "hisTimetable"),

		DefaultGrade: getEnv("DEFAULT_GRADE", "1"),
		DefaultClass: getEnv("DEFAULT_CLASS_NM", "1"),

		// Kakao Skill Configuration
		SkillSecret: getEnv("KAKAO_SKILL_SECRET", ""),

		// Server Configuration
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Data Configuration
		DataDir:  getEnv("DATA_DIR", "./data"),
		CacheTTL: getDurationEnv("CACHE_TTL", 10*time.Minute),
		Timezone: getEnv("TIMEZONE", "Asia/Seoul"),

		// Fetch Configuration
		FetchTimeout:    getDurationEnv("FETCH_TIMEOUT", NeisRequest),
		FetchMaxRetries: getIntEnv("FETCH_MAX_RETRIES", 2),

		UserRateLimitBurst:    getIntEnv("USER_RATE_LIMIT_BURST", 5),
		UserRateLimitInterval: getDurationEnv("USER_RATE_LIMIT_INTERVAL", 2*time.Second),

		// Error tracking
		SentryToken: getEnv("SENTRY_TOKEN", ""),
		SentryHost:  getEnv("SENTRY_HOST", "errors.betterstack.com"),

		// Log shipping
		BetterstackToken: getEnv("BETTERSTACK_TOKEN", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.NeisAPIKey == "" {
		errs = append(errs, errors.New("NEIS_API_KEY is required"))
	}
	if c.EducationOffice == "" {
		errs = append(errs, errors.New("NEIS_EDU_OFFICE_CODE is required"))
	}
	if c.SchoolCode == "" {
		errs = append(errs, errors.New("NEIS_SCHOOL_CODE is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %v", c.CacheTTL))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout))
	}
	if c.FetchMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("FETCH_MAX_RETRIES cannot be negative, got %d", c.FetchMaxRetries))
	}
	if c.UserRateLimitBurst < 0 {
		errs = append(errs, fmt.Errorf("USER_RATE_LIMIT_BURST cannot be negative, got %d", c.UserRateLimitBurst))
	}
	if c.UserRateLimitBurst > 0 && c.UserRateLimitInterval <= 0 {
		errs = append(errs, fmt.Errorf("USER_RATE_LIMIT_INTERVAL must be positive, got %v", c.UserRateLimitInterval))
	}
	if c.TimetableEndpoint != "hisTimetable" && c.TimetableEndpoint != "misTimetable" && c.TimetableEndpoint != "elsTimetable" {
		errs = append(errs, fmt.Errorf("NEIS_TIMETABLE_ENDPOINT must be hisTimetable, misTimetable or elsTimetable, got %q", c.TimetableEndpoint))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
