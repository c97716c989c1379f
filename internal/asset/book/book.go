// Package book provides an in-memory book-entry ledger implementing the
// asset transfer contract. It backs tests and in-process embeddings; real
// deployments point the vault service at an external asset mover instead.
package book

import (
	"context"
	"fmt"
	"sync"

	"github.com/disciplr/vault/internal/asset"
)

// Ledger tracks integer balances per principal.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]int64)}
}

// Credit adds funds to a principal's balance. Used to seed test accounts.
func (l *Ledger) Credit(principal string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[principal] += amount
	return nil
}

// Balance returns the current balance for a principal.
func (l *Ledger) Balance(principal string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[principal]
}

// Transfer implements asset.Transferrer. The debit and credit happen under
// one lock so no partial movement is ever observable.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok {
		return asset.ErrAccountNotFound
	}
	if balance < amount {
		return asset.ErrInsufficientBalance
	}
	l.balances[from] = balance - amount
	l.balances[to] += amount
	return nil
}
