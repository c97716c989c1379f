// Package sqlite provides the SQLite-backed vault store and book ledger.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/disciplr/vault/internal/platform/storage/sqlitemigrate"
	"github.com/disciplr/vault/internal/storage"
	"github.com/disciplr/vault/internal/storage/sqlite/migrations"
	"github.com/disciplr/vault/internal/vault/domain"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides a SQLite-backed vault store. It also implements the asset
// transfer contract over a book-entry accounts table in the same database,
// so a transfer and the status write of one call commit against one file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite vault store at the provided path and applies
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.VaultsFS, "vaults"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Create implements storage.VaultStore. AUTOINCREMENT guarantees the
// allocated identifier is strictly increasing and never reused, even after
// rows reach terminal states.
func (s *Store) Create(ctx context.Context, vault domain.Vault) (domain.VaultID, error) {
	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO vaults (
    creator, amount, start_timestamp, end_timestamp, milestone_commitment,
    verifier, success_destination, failure_destination, status,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vault.Creator,
		vault.Amount,
		toMillis(vault.StartTimestamp),
		toMillis(vault.EndTimestamp),
		vault.Commitment[:],
		vault.Verifier,
		vault.SuccessDestination,
		vault.FailureDestination,
		string(vault.Status),
		toMillis(vault.CreatedAt),
		toMillis(vault.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert vault: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read allocated vault id: %w", err)
	}
	return domain.VaultID(id), nil
}

// Get implements storage.VaultStore.
func (s *Store) Get(ctx context.Context, id domain.VaultID) (domain.Vault, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, creator, amount, start_timestamp, end_timestamp, milestone_commitment,
       verifier, success_destination, failure_destination, status,
       created_at, updated_at
FROM vaults WHERE id = ?`, uint64(id))

	vault, err := scanVault(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Vault{}, storage.ErrNotFound
		}
		return domain.Vault{}, fmt.Errorf("get vault %d: %w", id, err)
	}
	return vault, nil
}

// Put implements storage.VaultStore.
func (s *Store) Put(ctx context.Context, vault domain.Vault) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO vaults (
    id, creator, amount, start_timestamp, end_timestamp, milestone_commitment,
    verifier, success_destination, failure_destination, status,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    creator = excluded.creator,
    amount = excluded.amount,
    start_timestamp = excluded.start_timestamp,
    end_timestamp = excluded.end_timestamp,
    milestone_commitment = excluded.milestone_commitment,
    verifier = excluded.verifier,
    success_destination = excluded.success_destination,
    failure_destination = excluded.failure_destination,
    status = excluded.status,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at`,
		uint64(vault.ID),
		vault.Creator,
		vault.Amount,
		toMillis(vault.StartTimestamp),
		toMillis(vault.EndTimestamp),
		vault.Commitment[:],
		vault.Verifier,
		vault.SuccessDestination,
		vault.FailureDestination,
		string(vault.Status),
		toMillis(vault.CreatedAt),
		toMillis(vault.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put vault %d: %w", vault.ID, err)
	}
	return nil
}

// ListActiveEndingBefore implements storage.VaultStore.
func (s *Store) ListActiveEndingBefore(ctx context.Context, deadline time.Time, limit int) ([]domain.Vault, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, creator, amount, start_timestamp, end_timestamp, milestone_commitment,
       verifier, success_destination, failure_destination, status,
       created_at, updated_at
FROM vaults
WHERE status = ? AND end_timestamp <= ?
ORDER BY id
LIMIT ?`, string(domain.StatusActive), toMillis(deadline), limit)
	if err != nil {
		return nil, fmt.Errorf("list expired vaults: %w", err)
	}
	defer rows.Close()

	var expired []domain.Vault
	for rows.Next() {
		vault, err := scanVault(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired vault: %w", err)
		}
		expired = append(expired, vault)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read expired vaults: %w", err)
	}
	return expired, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVault(row scanner) (domain.Vault, error) {
	var (
		id         uint64
		vault      domain.Vault
		start      int64
		end        int64
		commitment []byte
		status     string
		createdAt  int64
		updatedAt  int64
	)
	if err := row.Scan(
		&id,
		&vault.Creator,
		&vault.Amount,
		&start,
		&end,
		&commitment,
		&vault.Verifier,
		&vault.SuccessDestination,
		&vault.FailureDestination,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Vault{}, err
	}

	if len(commitment) != domain.CommitmentSize {
		return domain.Vault{}, fmt.Errorf("vault %d: commitment must be %d bytes, got %d", id, domain.CommitmentSize, len(commitment))
	}
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return domain.Vault{}, fmt.Errorf("vault %d: unknown status %q", id, status)
	}

	vault.ID = domain.VaultID(id)
	copy(vault.Commitment[:], commitment)
	vault.StartTimestamp = fromMillis(start)
	vault.EndTimestamp = fromMillis(end)
	vault.Status = parsed
	vault.CreatedAt = fromMillis(createdAt)
	vault.UpdatedAt = fromMillis(updatedAt)
	return vault, nil
}
