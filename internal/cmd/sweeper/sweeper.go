// Package sweeper parses sweeper command flags and launches the deadline
// sweep daemon.
package sweeper

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/disciplr/vault/internal/identity"
	entrypoint "github.com/disciplr/vault/internal/platform/cmd"
	"github.com/disciplr/vault/internal/storage/sqlite"
	"github.com/disciplr/vault/internal/vault/service"
	"github.com/disciplr/vault/internal/vault/sweep"
)

// Config holds sweeper command configuration.
type Config struct {
	DBPath         string        `env:"DISCIPLR_VAULT_SWEEPER_DB_PATH" envDefault:"data/vault.db"`
	SweepInterval  time.Duration `env:"DISCIPLR_VAULT_SWEEPER_INTERVAL" envDefault:"1m"`
	BatchSize      int           `env:"DISCIPLR_VAULT_SWEEPER_BATCH_SIZE" envDefault:"100"`
	CustodyAccount string        `env:"DISCIPLR_VAULT_SWEEPER_CUSTODY_ACCOUNT" envDefault:"vault-custody"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The vault SQLite database path")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "Deadline sweep interval")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Maximum vaults redirected per sweep")
	fs.StringVar(&cfg.CustodyAccount, "custody-account", cfg.CustodyAccount, "Custody account holding active deposits")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sweep daemon.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSweeper, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		// Deadline redirects are permissionless, so the identity gate is
		// never consulted on this path.
		svc := service.NewService(store, store, identity.ContextGate{},
			service.WithCustodyAccount(cfg.CustodyAccount),
		)
		sweeper := sweep.New(store, svc,
			sweep.WithInterval(cfg.SweepInterval),
			sweep.WithBatchSize(cfg.BatchSize),
		)

		log.Printf("sweeping %s every %s", cfg.DBPath, cfg.SweepInterval)
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
}
