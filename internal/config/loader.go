package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads the TOML file at path on top of Defaults, applies .env and
// INVESTLY_* overrides, and returns the result. An empty path skips the
// file. The returned Config has not been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setFloat64(&cfg.Game.StartingCash, "INVESTLY_GAME_STARTING_CASH")
	setStr(&cfg.Game.AgeTier, "INVESTLY_GAME_AGE_TIER")
	setInt64(&cfg.Game.Seed, "INVESTLY_GAME_SEED")
	setFloat64(&cfg.Game.Noise, "INVESTLY_GAME_NOISE")
	setInt(&cfg.Game.HeadlineTape, "INVESTLY_GAME_HEADLINE_TAPE")
	setBool(&cfg.Game.StrictCatalog, "INVESTLY_GAME_STRICT_CATALOG")

	setStr(&cfg.Log.Level, "INVESTLY_LOG_LEVEL")
	setBool(&cfg.Log.Pretty, "INVESTLY_LOG_PRETTY")
	setStr(&cfg.Log.File, "INVESTLY_LOG_FILE")

	setStr(&cfg.Server.Addr, "INVESTLY_SERVER_ADDR")
	setDuration(&cfg.Server.ShutdownTimeout, "INVESTLY_SERVER_SHUTDOWN_TIMEOUT")

	setStr(&cfg.Profile.Backend, "INVESTLY_PROFILE_BACKEND")
	setInt(&cfg.Profile.SyncBuffer, "INVESTLY_PROFILE_SYNC_BUFFER")
	setDuration(&cfg.Profile.SyncTimeout, "INVESTLY_PROFILE_SYNC_TIMEOUT")
	setStr(&cfg.Profile.Redis.Addr, "INVESTLY_REDIS_ADDR")
	setStr(&cfg.Profile.Redis.Password, "INVESTLY_REDIS_PASSWORD")
	setInt(&cfg.Profile.Redis.DB, "INVESTLY_REDIS_DB")
	setStr(&cfg.Profile.Redis.Key, "INVESTLY_REDIS_KEY")
}

// Each helper only mutates the target when the variable is set and parses.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
