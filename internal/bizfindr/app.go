// Package bizfindr assembles the BizFindr dashboard from its parts: the
// local database, the stats client and the page handlers.
package bizfindr

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bizfindr/bizfindr/internal/core/config"
	"github.com/bizfindr/bizfindr/internal/core/stats"
	"github.com/bizfindr/bizfindr/internal/data/db"
	"github.com/bizfindr/bizfindr/internal/data/stores"
	"github.com/bizfindr/bizfindr/internal/data/sweep"
)

// SweepInterval is how often expired KV entries are removed.
const SweepInterval = 5 * time.Minute

// App is the central entry point for BizFindr operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	DB      *db.DB
	KV      *stores.KVStore
	History *stores.NotifyStore
	Client  *stats.Client
	Format  stats.Formatter
}

// NewApp constructs an App from an opened database.
func NewApp(cfg *config.Config, database *db.DB) (*App, error) {
	format, err := stats.NewFormatter(cfg.Stats.Locale, cfg.Stats.Suffix)
	if err != nil {
		return nil, fmt.Errorf("create formatter: %w", err)
	}

	return &App{
		Config:  cfg,
		DB:      database,
		KV:      stores.NewKVStore(database),
		History: stores.NewNotifyStore(database, cfg.Alerts.MaxHistory),
		Client:  stats.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout),
		Format:  format,
	}, nil
}

// OpenDB opens the database in the configured data directory. A corrupted
// database file is moved aside and a fresh one is created.
func OpenDB(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := db.Open(cfg.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Warn().Err(err).Str("data_dir", cfg.DataDir).Msg("database corrupted, starting fresh")
	if err := stores.RecoverFromCorruption(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("recover database: %w", err)
	}

	database, err = db.Open(cfg.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

// StartSweep removes expired KV entries in the background until the returned
// cancel func is called.
func (a *App) StartSweep(ctx context.Context) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go sweep.Start(ctx, "kv", a.KV.SweepExpired, SweepInterval)
	return cancel
}
