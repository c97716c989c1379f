// Package sweep drives the permissionless deadline redirect: it finds
// Active vaults whose window has closed and redirects each deposit to its
// failure destination.
package sweep

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/disciplr/vault/internal/vault/domain"
)

const (
	defaultInterval  = time.Minute
	defaultBatchSize = 100
)

// Lister enumerates expired Active vaults. Enumeration lives in the storage
// adapter, not in the state machine.
type Lister interface {
	ListActiveEndingBefore(ctx context.Context, deadline time.Time, limit int) ([]domain.Vault, error)
}

// Redirector performs the deadline redirect for one vault.
type Redirector interface {
	RedirectFunds(ctx context.Context, vaultID domain.VaultID) error
}

// Sweeper periodically redirects expired vaults. Redirects are idempotent
// in effect, so overlapping sweeps or competing sweepers are harmless: the
// loser of a race simply observes a non-Active vault.
type Sweeper struct {
	lister     Lister
	redirector Redirector
	interval   time.Duration
	batchSize  int
	clock      func() time.Time
}

// Option configures optional sweeper behavior.
type Option func(*Sweeper)

// WithInterval overrides the sweep period.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithBatchSize overrides how many vaults one sweep processes.
func WithBatchSize(size int) Option {
	return func(s *Sweeper) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithClock overrides the current-time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New creates a sweeper over the given lister and redirector.
func New(lister Lister, redirector Redirector, opts ...Option) *Sweeper {
	s := &Sweeper{
		lister:     lister,
		redirector: redirector,
		interval:   defaultInterval,
		batchSize:  defaultBatchSize,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil {
			log.Printf("sweep: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SweepOnce redirects one batch of expired vaults and reports how many were
// settled. A vault another caller settled first is skipped, not an error.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	expired, err := s.lister.ListActiveEndingBefore(ctx, s.clock().UTC(), s.batchSize)
	if err != nil {
		return 0, err
	}

	redirected := 0
	for _, vault := range expired {
		if err := s.redirector.RedirectFunds(ctx, vault.ID); err != nil {
			if errors.Is(err, domain.ErrNotActive) || errors.Is(err, domain.ErrVaultNotFound) {
				continue
			}
			log.Printf("redirect vault %d: %v", vault.ID, err)
			continue
		}
		redirected++
	}
	return redirected, nil
}
