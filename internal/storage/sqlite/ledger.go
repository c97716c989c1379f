package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/disciplr/vault/internal/asset"
)

// Credit adds funds to a principal's account, creating it when missing.
// Used to seed balances when the store doubles as the asset ledger.
func (s *Store) Credit(ctx context.Context, principal string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO accounts (principal, balance) VALUES (?, ?)
ON CONFLICT (principal) DO UPDATE SET balance = balance + excluded.balance`,
		principal, amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", principal, err)
	}
	return nil
}

// Balance returns the current balance for a principal. Missing accounts
// read as zero.
func (s *Store) Balance(ctx context.Context, principal string) (int64, error) {
	var balance int64
	row := s.sqlDB.QueryRowContext(ctx, "SELECT balance FROM accounts WHERE principal = ?", principal)
	if err := row.Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("read balance %s: %w", principal, err)
	}
	return balance, nil
}

// Transfer implements asset.Transferrer. The debit and credit commit in a
// single transaction; a failed debit leaves both accounts untouched.
func (s *Store) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance int64
	row := tx.QueryRowContext(ctx, "SELECT balance FROM accounts WHERE principal = ?", from)
	if err := row.Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return asset.ErrAccountNotFound
		}
		return fmt.Errorf("read balance %s: %w", from, err)
	}
	if balance < amount {
		return asset.ErrInsufficientBalance
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE accounts SET balance = balance - ? WHERE principal = ?", amount, from); err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO accounts (principal, balance) VALUES (?, ?)
ON CONFLICT (principal) DO UPDATE SET balance = balance + excluded.balance`,
		to, amount); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer: %w", err)
	}
	return nil
}
