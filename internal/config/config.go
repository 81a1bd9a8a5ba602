package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Database
	DatabaseURL       string        // "sqlite://", "sqlite:///path.db" or "postgres://..."
	DBMaxOpenConns    int           // pool size, ignored for SQLite (always 1)
	DBConnMaxLifetime time.Duration // connection recycling, ignored for SQLite
	DBSlowThreshold   time.Duration // queries slower than this are logged at warn
	AutoMigrate       bool          // run schema migration at startup

	// Redis (optional, enables the bucket navigation cache)
	RedisAddr             string        // ex: "localhost:6379", empty disables Redis
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => refuse to start without a password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	NavCacheTTL           time.Duration // lifetime of the cached bucket list

	AllowedHosts    []string // optional, restrict access to specific Host headers
	AllowedOrigins  []string // optional, CORS origins; empty => no CORS headers
	OpsAllowedCIDRS []string // optional, restrict /healthz and /readyz to these IPs/CIDRs
	TrustProxy      bool     // true => trust X-Forwarded-For headers

	RateLimitBurst  int // per-client burst, 0 disables rate limiting
	RateLimitPerMin int // tokens refilled per client per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BUCKETS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BUCKETS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BUCKETS_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("BUCKETS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BUCKETS_PRETTY_LOG", true),

		// Database settings (SQLite in-memory fallback, like the unit tests use)
		DatabaseURL:       getenv("DATABASE_URL", "sqlite://"),
		DBMaxOpenConns:    getenvInt("BUCKETS_DB_MAX_OPEN_CONNS", 10),
		DBConnMaxLifetime: mustDuration("BUCKETS_DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBSlowThreshold:   mustDuration("BUCKETS_DB_SLOW_THRESHOLD", 200*time.Millisecond),
		AutoMigrate:       mustBool("BUCKETS_AUTO_MIGRATE", true),

		// Redis settings
		RedisAddr:             getenv("BUCKETS_REDIS_ADDR", ""),
		RedisUser:             getenv("BUCKETS_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("BUCKETS_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("BUCKETS_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("BUCKETS_REDIS_DB", 0),
		RedisDT:               mustDuration("BUCKETS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("BUCKETS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("BUCKETS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("BUCKETS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("BUCKETS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("BUCKETS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("BUCKETS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("BUCKETS_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("BUCKETS_REDIS_WARN_THRESHOLD", 3),
		NavCacheTTL:           mustDuration("BUCKETS_NAV_CACHE_TTL", 10*time.Minute),

		// Access restrictions
		AllowedHosts:    splitAndTrim(getenv("BUCKETS_ALLOWED_HOSTS", "")),
		AllowedOrigins:  splitAndTrim(getenv("BUCKETS_ALLOWED_ORIGINS", "")),
		OpsAllowedCIDRS: parseAllowedIPs(getenv("BUCKETS_OPS_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("BUCKETS_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("BUCKETS_RATE_LIMIT_BURST", 0),
		RateLimitPerMin: getenvInt("BUCKETS_RATE_LIMIT_PER_MIN", 120),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.DatabaseURL = redactURL(cfg.DatabaseURL)
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate reports configuration combinations the process cannot run with.
func (c *Config) Validate() error {
	if c.RedisAddr != "" && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("BUCKETS_REDIS_PASSWORD is required when BUCKETS_REDIS_PASSWORD_REQUIRED=true")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("BUCKETS_RATE_LIMIT_BURST must be >= 0, got %d", c.RateLimitBurst)
	}
	return nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// redactURL hides the password of a URL-style DSN.
// Example: "postgres://app:secret@db/buckets" -> "postgres://app:***@db/buckets"
func redactURL(dsn string) string {
	schemeEnd := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if schemeEnd == -1 || at == -1 || at < schemeEnd {
		return dsn
	}
	userinfo := dsn[schemeEnd+3 : at]
	colon := strings.Index(userinfo, ":")
	if colon == -1 {
		return dsn
	}
	return dsn[:schemeEnd+3] + userinfo[:colon] + ":***" + dsn[at:]
}
