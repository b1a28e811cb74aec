// Package config loads process-level settings from TOML, .env and
// INVESTLY_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/zappabad/investly/internal/news"
)

// Config is the top-level configuration.
type Config struct {
	Game    GameConfig    `toml:"game"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	Profile ProfileConfig `toml:"profile"`
}

// GameConfig holds engine parameters.
type GameConfig struct {
	StartingCash  float64 `toml:"starting_cash"`
	AgeTier       string  `toml:"age_tier"`
	Seed          int64   `toml:"seed"` // zero seeds from the clock
	Noise         float64 `toml:"noise"`
	HeadlineTape  int     `toml:"headline_tape"`
	StrictCatalog bool    `toml:"strict_catalog"`
}

// LogConfig holds logger parameters.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
	// File receives TUI logs; the terminal is owned by the UI.
	File string `toml:"file"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// ProfileConfig selects and tunes the profile store.
type ProfileConfig struct {
	Backend     string      `toml:"backend"`
	SyncBuffer  int         `toml:"sync_buffer"`
	SyncTimeout duration    `toml:"sync_timeout"`
	Redis       RedisConfig `toml:"redis"`
}

// RedisConfig holds redis connection parameters.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// duration is a wrapper around time.Duration that supports TOML string decoding
// (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Game: GameConfig{
			StartingCash: 10000,
			AgeTier:      string(news.TierHigh),
			Noise:        0.02,
			HeadlineTape: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: duration{10 * time.Second},
		},
		Profile: ProfileConfig{
			Backend:     "memory",
			SyncBuffer:  64,
			SyncTimeout: duration{2 * time.Second},
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "investly:profile",
			},
		},
	}
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

var validBackends = map[string]bool{
	"memory": true, "redis": true,
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Game.StartingCash < 0 {
		errs = append(errs, "game: starting_cash must not be negative")
	}
	if _, ok := news.ParseTier(c.Game.AgeTier); !ok {
		errs = append(errs, fmt.Sprintf("game: unknown age_tier %q (valid: LOW, MID, HIGH)", c.Game.AgeTier))
	}
	if c.Game.Noise < 0 || c.Game.Noise >= 1 {
		errs = append(errs, fmt.Sprintf("game: noise must be in [0, 1), got %g", c.Game.Noise))
	}
	if c.Game.HeadlineTape < 0 {
		errs = append(errs, "game: headline_tape must not be negative")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log: unknown level %q (valid: debug, info, warn, error, disabled)", c.Log.Level))
	}

	if c.Server.Addr == "" {
		errs = append(errs, "server: addr must not be empty")
	}

	if !validBackends[strings.ToLower(c.Profile.Backend)] {
		errs = append(errs, fmt.Sprintf("profile: unknown backend %q (valid: memory, redis)", c.Profile.Backend))
	}
	if strings.EqualFold(c.Profile.Backend, "redis") && c.Profile.Redis.Addr == "" {
		errs = append(errs, "profile.redis: addr is required for the redis backend")
	}
	if c.Profile.SyncBuffer < 0 {
		errs = append(errs, "profile: sync_buffer must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
