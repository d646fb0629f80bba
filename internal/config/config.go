// Package config loads skillring's runtime configuration.
//
// Values are layered, lowest precedence first:
//
//  1. defaults ([New])
//  2. a YAML file, from the --config flag or SKILLRING_CONFIG
//  3. environment variables with the SKILLRING_ prefix, e.g.
//     SKILLRING_ADDR=:9000 or SKILLRING_SESSION_TTL=5m
//
// Command-line flags for a single command are applied by the CLI on top.
package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/errors"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address for "skillring serve".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ContentPath is a JSON or TOML deck file. Empty means the embedded
	// skills deck unless MongoURI is set.
	ContentPath string `koanf:"content_path"`

	// MongoURI, MongoDatabase and MongoCollection select a MongoDB deck.
	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	// RedisAddr enables the shared Redis cache; empty uses memory.
	RedisAddr   string `koanf:"redis_addr"`
	RedisPrefix string `koanf:"redis_prefix"`

	// CacheTTL bounds how long rendered frames are reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// SessionTTL is the idle time after which a hosted session is closed.
	SessionTTL  time.Duration `koanf:"session_ttl"`
	MaxSessions int           `koanf:"max_sessions"`

	// Carousel timing, in milliseconds, and swipe threshold in pixels.
	AutoAdvanceMS    int     `koanf:"auto_advance_ms"`
	CooldownMS       int     `koanf:"cooldown_ms"`
	WheelThrottleMS  int     `koanf:"wheel_throttle_ms"`
	MinSwipeDistance float64 `koanf:"min_swipe_distance"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		Addr:             ":8080",
		LogLevel:         "info",
		MongoDatabase:    "skillring",
		MongoCollection:  "cards",
		RedisPrefix:      "skillring:",
		CacheTTL:         time.Hour,
		SessionTTL:       10 * time.Minute,
		MaxSessions:      1000,
		AutoAdvanceMS:    int(carousel.DefaultInterval / time.Millisecond),
		CooldownMS:       int(carousel.DefaultCooldown / time.Millisecond),
		WheelThrottleMS:  int(carousel.DefaultWheelThrottle / time.Millisecond),
		MinSwipeDistance: carousel.DefaultMinSwipeDistance,
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "addr must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log_level")
	}
	if c.AutoAdvanceMS <= 0 || c.CooldownMS <= 0 || c.WheelThrottleMS <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "auto_advance_ms, cooldown_ms and wheel_throttle_ms must be positive")
	}
	if c.MinSwipeDistance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min_swipe_distance cannot be negative")
	}
	if c.SessionTTL <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "session_ttl must be positive")
	}
	if c.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache_ttl cannot be negative")
	}
	if c.ContentPath != "" && c.MongoURI != "" {
		return errors.New(errors.ErrCodeInvalidInput, "content_path and mongo_uri are mutually exclusive")
	}
	return nil
}

// Level returns the parsed log level; invalid levels fall back to info.
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// CarouselOptions converts the timing keys to controller options.
func (c *Config) CarouselOptions() []carousel.Option {
	return []carousel.Option{
		carousel.WithAutoAdvanceInterval(time.Duration(c.AutoAdvanceMS) * time.Millisecond),
		carousel.WithCooldown(time.Duration(c.CooldownMS) * time.Millisecond),
		carousel.WithWheelThrottle(time.Duration(c.WheelThrottleMS) * time.Millisecond),
		carousel.WithMinSwipeDistance(c.MinSwipeDistance),
	}
}
