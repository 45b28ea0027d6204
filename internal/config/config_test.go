package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEIS_API_KEY", "test_key")
	t.Setenv("NEIS_EDU_OFFICE_CODE", "J10")
	t.Setenv("NEIS_SCHOOL_CODE", "7530581")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.NeisAPIKey != "test_key" {
		t.Errorf("Expected api key 'test_key', got '%s'", cfg.NeisAPIKey)
	}
	if cfg.EducationOffice != "J10" {
		t.Errorf("Expected office code 'J10', got '%s'", cfg.EducationOffice)
	}

	// Check defaults
	if cfg.Port != "10000" {
		t.Errorf("Expected default port '10000', got '%s'", cfg.Port)
	}
	if cfg.NeisBaseURL != "https://open.neis.go.kr/hub" {
		t.Errorf("Unexpected default base URL: %s", cfg.NeisBaseURL)
	}
	if cfg.TimetableEndpoint != "hisTimetable" {
		t.Errorf("Expected default timetable endpoint 'hisTimetable', got '%s'", cfg.TimetableEndpoint)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected default cache TTL 10m, got %v", cfg.CacheTTL)
	}
	if cfg.Timezone != "Asia/Seoul" {
		t.Errorf("Expected default timezone Asia/Seoul, got %s", cfg.Timezone)
	}
	if cfg.FetchMaxRetries != 2 {
		t.Errorf("Expected default max retries 2, got %d", cfg.FetchMaxRetries)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"NEIS_API_KEY", "NEIS_EDU_OFFICE_CODE", "NEIS_SCHOOL_CODE"} {
		t.Setenv(key, "")
	}
	_ = os.Unsetenv("NEIS_API_KEY")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without required env vars")
	}
	if !strings.Contains(err.Error(), "NEIS_API_KEY") {
		t.Errorf("error should mention NEIS_API_KEY: %v", err)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{
			name:     "negative cache TTL",
			mutate:   func(c *Config) { c.CacheTTL = -time.Minute },
			contains: "CACHE_TTL",
		},
		{
			name:     "zero fetch timeout",
			mutate:   func(c *Config) { c.FetchTimeout = 0 },
			contains: "FETCH_TIMEOUT",
		},
		{
			name:     "negative retries",
			mutate:   func(c *Config) { c.FetchMaxRetries = -1 },
			contains: "FETCH_MAX_RETRIES",
		},
		{
			name:     "bad timetable endpoint",
			mutate:   func(c *Config) { c.TimetableEndpoint = "uniTimetable" },
			contains: "NEIS_TIMETABLE_ENDPOINT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("CACHE_TTL", "30m")
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
}
