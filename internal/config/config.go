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

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Engine
	DefaultZoom     float64 // pixels per second for new sessions (default: 50)
	OverlapPolicy   string  // "allow" | "reject" | "clamp"
	EnforceSameKind bool    // refuse video<->audio clip moves
	HistoryLimit    int     // max undo entries, 0 = unbounded

	// Assets and snapshots
	ManifestFile     string        // path to the assets manifest (optional, empty = manifest disabled)
	ReloadInterval   time.Duration // interval to reload the manifest (default: 1m)
	SnapshotInterval time.Duration // interval to persist the timeline when it changed (default: 30s)

	// Rate limiting on mutation routes
	RateBurst        int // bucket size per client IP
	RateRefillPerMin int // tokens added per client IP per minute

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
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

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SPLICE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SPLICE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SPLICE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SPLICE_PRETTY_LOG", true),

		// Engine
		DefaultZoom:     getenvFloat("SPLICE_DEFAULT_ZOOM", 50),
		OverlapPolicy:   getenv("SPLICE_OVERLAP_POLICY", "allow"),
		EnforceSameKind: mustBool("SPLICE_ENFORCE_SAME_KIND", true),
		HistoryLimit:    getenvInt("SPLICE_HISTORY_LIMIT", 0),

		// Assets and snapshots
		ManifestFile:     getenv("SPLICE_MANIFEST_FILE", ""), // Optional, empty = manifest disabled
		ReloadInterval:   mustDuration("SPLICE_RELOAD_INTERVAL", time.Minute),
		SnapshotInterval: mustDuration("SPLICE_SNAPSHOT_INTERVAL", 30*time.Second),

		RateBurst:        getenvInt("SPLICE_RATE_BURST", 30),
		RateRefillPerMin: getenvInt("SPLICE_RATE_REFILL_PER_MIN", 600),

		// Redis settings
		RedisAddr:             requireEnv("SPLICE_REDIS_ADDR"),
		RedisUser:             getenv("SPLICE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SPLICE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("SPLICE_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("SPLICE_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SPLICE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SPLICE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SPLICE_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SPLICE_REDIS_PASSWORD is required when SPLICE_REDIS_PASSWORD_REQUIRED=true")
	}

	switch cfg.OverlapPolicy {
	case "allow", "reject", "clamp":
	default:
		panic(fmt.Sprintf("❌ FATAL: SPLICE_OVERLAP_POLICY must be allow, reject or clamp, got %q", cfg.OverlapPolicy))
	}

	if cfg.DefaultZoom <= 0 {
		panic(fmt.Sprintf("❌ FATAL: SPLICE_DEFAULT_ZOOM must be > 0, got %v", cfg.DefaultZoom))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
