package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:                 "8081",
		ShutdownTimeout:      10 * time.Second,
		LogLevel:             "info",
		LogFormat:            "text",
		SessionTTL:           30 * time.Minute,
		MaxSessions:          1000,
		CacheCleanupInterval: time.Minute,
		RateLimitPerMinute:   120,
		NotificationDuration: 3 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid default config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "json format upper case accepted",
			mutate:  func(c *Config) { c.LogFormat = "JSON"; c.LogLevel = "DEBUG" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose': must be one of [debug info warn error]",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be one of [text json]",
		},
		{
			name:        "session TTL too short",
			mutate:      func(c *Config) { c.SessionTTL = 10 * time.Second },
			wantErr:     true,
			errorString: "invalid session TTL 10s: must be at least 1 minute",
		},
		{
			name:        "session TTL too long",
			mutate:      func(c *Config) { c.SessionTTL = 48 * time.Hour },
			wantErr:     true,
			errorString: "invalid session TTL 48h0m0s: must be at most 24 hours",
		},
		{
			name:        "max sessions zero",
			mutate:      func(c *Config) { c.MaxSessions = 0 },
			wantErr:     true,
			errorString: "invalid max sessions 0: must be at least 1",
		},
		{
			name:        "cleanup interval too short",
			mutate:      func(c *Config) { c.CacheCleanupInterval = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache cleanup interval 100ms: must be at least 1 second",
		},
		{
			name:        "rate limit zero",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1 request per minute",
		},
		{
			name:        "notification duration too short",
			mutate:      func(c *Config) { c.NotificationDuration = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid notification duration 100ms: must be between 500ms and 1m",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr:     true,
			errorString: "invalid shutdown timeout 0s: must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want error containing %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.MaxSessions = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error but got none")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:\n- ") {
		t.Errorf("Validate() error = %q, want aggregated prefix", msg)
	}
	if strings.Count(msg, "\n- ") != 2 {
		t.Errorf("Validate() error = %q, want two problems listed", msg)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "SESSION_TTL",
		"MAX_SESSIONS", "CACHE_CLEANUP_INTERVAL", "RATE_LIMIT_PER_MINUTE",
		"NOTIFICATION_DURATION_MS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
			t.Errorf("Load() logging = %v/%v, want info/text", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Load() SessionTTL = %v, want 30m", cfg.SessionTTL)
		}
		if cfg.MaxSessions != 1000 {
			t.Errorf("Load() MaxSessions = %v, want 1000", cfg.MaxSessions)
		}
		if cfg.NotificationDuration != 3*time.Second {
			t.Errorf("Load() NotificationDuration = %v, want 3s", cfg.NotificationDuration)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("MAX_SESSIONS", "50")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
		t.Setenv("NOTIFICATION_DURATION_MS", "5000")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("Load() LogFormat = %v, want json", cfg.LogFormat)
		}
		if cfg.SessionTTL != 2*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 2h", cfg.SessionTTL)
		}
		if cfg.MaxSessions != 50 {
			t.Errorf("Load() MaxSessions = %v, want 50", cfg.MaxSessions)
		}
		if cfg.RateLimitPerMinute != 30 {
			t.Errorf("Load() RateLimitPerMinute = %v, want 30", cfg.RateLimitPerMinute)
		}
		if cfg.NotificationDuration != 5*time.Second {
			t.Errorf("Load() NotificationDuration = %v, want 5s", cfg.NotificationDuration)
		}
	})

	t.Run("malformed values fall back to defaults", func(t *testing.T) {
		t.Setenv("MAX_SESSIONS", "many")
		t.Setenv("SESSION_TTL", "forever")

		cfg := Load()

		if cfg.MaxSessions != 1000 {
			t.Errorf("Load() MaxSessions = %v, want 1000", cfg.MaxSessions)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Load() SessionTTL = %v, want 30m", cfg.SessionTTL)
		}
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_VALUE", "x")
	if got := getEnv("STOREFRONT_TEST_VALUE", "d"); got != "x" {
		t.Errorf("getEnv() = %v, want x", got)
	}
	os.Unsetenv("STOREFRONT_TEST_VALUE")
	if got := getEnv("STOREFRONT_TEST_VALUE", "d"); got != "d" {
		t.Errorf("getEnv() = %v, want d", got)
	}
}
