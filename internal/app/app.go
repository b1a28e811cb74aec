// Package app wires configuration, logging, the profile store and the game
// together for the command-line entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/config"
	"github.com/zappabad/investly/internal/game"
	"github.com/zappabad/investly/internal/market/reprice"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/profile"
)

// App owns the game and its collaborators.
type App struct {
	Game   *game.Game
	Syncer *profile.Syncer
	Store  profile.Store

	log     zerolog.Logger
	closers []func() error
}

// New builds an App from cfg. The caller must Close it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{log: log.With().Str("component", "app").Logger()}

	store, err := a.openStore(ctx, cfg.Profile)
	if err != nil {
		return nil, err
	}
	if err := a.build(ctx, cfg, store, log); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStore is like New but uses store instead of the configured backend.
func NewWithStore(ctx context.Context, cfg *config.Config, store profile.Store, log zerolog.Logger) (*App, error) {
	a := &App{log: log.With().Str("component", "app").Logger()}
	if err := a.build(ctx, cfg, store, log); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context, cfg *config.Config, store profile.Store, log zerolog.Logger) error {
	a.Store = store

	gcfg := GameConfig(cfg.Game)
	opts := []game.Option{game.WithLogger(log)}
	if saved, err := store.Load(ctx); err == nil {
		// A saved profile wins even at zero cash: the player may be fully invested.
		opts = append(opts, game.WithCash(saved.Cash))
		a.log.Info().Str("cash", saved.Cash.StringFixed(2)).Msg("resuming cash from saved profile")
	} else if !errors.Is(err, profile.ErrNotFound) {
		a.log.Warn().Err(err).Msg("could not load profile, starting fresh")
	}

	a.Syncer = profile.NewSyncer(store, profile.Config{
		Buffer:         cfg.Profile.SyncBuffer,
		Timeout:        cfg.Profile.SyncTimeout.Duration,
		DropOnOverflow: true,
	}, log)
	a.closers = append(a.closers, func() error { a.Syncer.Close(); return nil })

	g, err := game.NewGame(gcfg, append(opts, game.WithProfileSink(a.Syncer))...)
	if err != nil {
		return fmt.Errorf("app: new game: %w", err)
	}
	a.Game = g
	return nil
}

// GameConfig converts file settings into a game.Config.
func GameConfig(c config.GameConfig) game.Config {
	gcfg := game.DefaultConfig()
	gcfg.StartingCash = decimal.NewFromFloat(c.StartingCash).Round(2)
	if tier, ok := news.ParseTier(c.AgeTier); ok {
		gcfg.Tier = tier
	}
	gcfg.Seed = c.Seed
	gcfg.Repricer = reprice.Config{Amplitude: decimal.NewNullDecimal(decimal.NewFromFloat(c.Noise))}
	if c.HeadlineTape > 0 {
		gcfg.TapeSize = c.HeadlineTape
	}
	gcfg.StrictCatalog = c.StrictCatalog
	return gcfg
}

func (a *App) openStore(ctx context.Context, pc config.ProfileConfig) (profile.Store, error) {
	switch strings.ToLower(pc.Backend) {
	case "redis":
		rs, err := profile.NewRedisStore(ctx, profile.RedisConfig{
			Addr:     pc.Redis.Addr,
			Password: pc.Redis.Password,
			DB:       pc.Redis.DB,
			Key:      pc.Redis.Key,
		})
		if err != nil {
			return nil, fmt.Errorf("app: profile store: %w", err)
		}
		a.closers = append(a.closers, rs.Close)
		a.log.Info().Str("addr", pc.Redis.Addr).Msg("redis profile store connected")
		return rs, nil
	default:
		return profile.NewMemoryStore(), nil
	}
}

// Close flushes pending profile saves and releases the store, newest
// resource first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("close")
		}
	}
	a.closers = nil
}
