package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oastransform/transformer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result list defaults.
	ChangeLimit int
	MaxLimit    int

	// Input limits.
	MaxInlineSize int64

	// Rules applies when a call names no rules. Empty means every rule.
	Rules []transformer.ChangeType
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASTRANSFORM_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASTRANSFORM_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASTRANSFORM_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASTRANSFORM_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASTRANSFORM_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASTRANSFORM_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ChangeLimit:        envInt("OASTRANSFORM_CHANGE_LIMIT", 100),
		MaxLimit:           envInt("OASTRANSFORM_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASTRANSFORM_MAX_INLINE_SIZE", 10*1024*1024)),
		Rules:              envRules("OASTRANSFORM_RULES"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envRules(key string) []transformer.ChangeType {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	rules, err := transformer.ParseChangeTypes(v)
	if err != nil {
		slog.Warn("invalid rules env var, applying all rules", "key", key, "value", v, "error", err)
		return nil
	}
	return rules
}
