// Package storage defines the persistence interfaces for vault records.
//
// The store owns identifier allocation: ids come from a persisted monotonic
// counter so a new vault can never overwrite an existing record. Vault
// records are never deleted; terminal vaults are retained for audit.
package storage

import (
	"context"
	"time"

	apperrors "github.com/disciplr/vault/internal/platform/errors"
	"github.com/disciplr/vault/internal/vault/domain"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use this to differentiate a legitimate "no such vault" state from
// transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// VaultStore persists vault records keyed by their allocated identifier.
type VaultStore interface {
	// Create allocates a fresh identifier and persists the record in one
	// atomic step. Identifiers are strictly increasing and never reused.
	Create(ctx context.Context, vault domain.Vault) (domain.VaultID, error)

	// Get returns the stored vault or ErrNotFound.
	Get(ctx context.Context, id domain.VaultID) (domain.Vault, error)

	// Put upserts the full record. The write is atomic relative to
	// concurrent reads; no caller ever observes a half-written record.
	Put(ctx context.Context, vault domain.Vault) error

	// ListActiveEndingBefore returns up to limit Active vaults whose end
	// timestamp is at or before the deadline. Enumeration exists for the
	// deadline sweeper; the core never lists.
	ListActiveEndingBefore(ctx context.Context, deadline time.Time, limit int) ([]domain.Vault, error)
}
