package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"BUCKETS_LISTEN_PORT", "DATABASE_URL", "BUCKETS_REDIS_ADDR",
		"BUCKETS_ALLOWED_HOSTS", "BUCKETS_AUTO_MIGRATE", "BUCKETS_LOG_LEVEL",
		"BUCKETS_RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.DatabaseURL != "sqlite://" {
		t.Errorf("DatabaseURL = %q, want sqlite://", cfg.DatabaseURL)
	}
	if !cfg.AutoMigrate {
		t.Error("AutoMigrate should default to true")
	}
	if cfg.RedisEnabled() {
		t.Error("Redis should be disabled without BUCKETS_REDIS_ADDR")
	}
	if cfg.RateLimitBurst != 0 {
		t.Errorf("RateLimitBurst = %d, want 0 (disabled)", cfg.RateLimitBurst)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BUCKETS_LISTEN_PORT", ":9090")
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/buckets")
	t.Setenv("BUCKETS_ALLOWED_HOSTS", "tasks.domain.ext, 'localhost:9090'")
	t.Setenv("BUCKETS_NAV_CACHE_TTL", "1m")
	t.Setenv("BUCKETS_REDIS_ADDR", "redis:6379")

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %q, want :9090", cfg.ListenPort)
	}
	if cfg.DatabaseURL != "postgres://app:secret@db:5432/buckets" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "localhost:9090" {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if cfg.NavCacheTTL != time.Minute {
		t.Errorf("NavCacheTTL = %v, want 1m", cfg.NavCacheTTL)
	}
	if !cfg.RedisEnabled() {
		t.Error("Redis should be enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "sqlite only",
			cfg:     Config{DatabaseURL: "sqlite://"},
			wantErr: false,
		},
		{
			name:    "empty database url",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "redis password required but missing",
			cfg:     Config{DatabaseURL: "sqlite://", RedisAddr: "redis:6379", RedisPasswordRequired: true},
			wantErr: true,
		},
		{
			name:    "negative rate limit burst",
			cfg:     Config{DatabaseURL: "sqlite://", RateLimitBurst: -1},
			wantErr: true,
		},
		{
			name:    "password required but redis disabled",
			cfg:     Config{DatabaseURL: "sqlite://", RedisPasswordRequired: true},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", value: "42", def: 1, expected: 42},
		{name: "invalid integer uses default", value: "not_a_number", def: 7, expected: 7},
		{name: "missing variable uses default", value: "", def: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if got := getenvInt("TEST_INT", tt.def); got != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{name: "empty", in: "", expected: nil},
		{name: "single value", in: "value1", expected: []string{"value1"}},
		{name: "multiple values", in: "value1, value2 ,value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quoted and blank parts", in: `"a", ,'b'`, expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.in)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://app:secret@db:5432/buckets", "postgres://app:***@db:5432/buckets"},
		{"postgres://app@db/buckets", "postgres://app@db/buckets"},
		{"sqlite:///data/buckets.db", "sqlite:///data/buckets.db"},
		{"sqlite://", "sqlite://"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := redactURL(tt.in); got != tt.want {
				t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
