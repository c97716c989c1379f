package book

import (
	"context"
	"errors"
	"testing"

	"github.com/disciplr/vault/internal/asset"
)

func TestTransferMovesFunds(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Credit("acct-a", 1000); err != nil {
		t.Fatalf("credit: %v", err)
	}

	if err := ledger.Transfer(context.Background(), "acct-a", "acct-b", 400); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if got := ledger.Balance("acct-a"); got != 600 {
		t.Fatalf("expected 600 in acct-a, got %d", got)
	}
	if got := ledger.Balance("acct-b"); got != 400 {
		t.Fatalf("expected 400 in acct-b, got %d", got)
	}
}

func TestTransferInsufficientBalanceHasNoEffect(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Credit("acct-a", 100); err != nil {
		t.Fatalf("credit: %v", err)
	}

	err := ledger.Transfer(context.Background(), "acct-a", "acct-b", 400)
	if !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if got := ledger.Balance("acct-a"); got != 100 {
		t.Fatalf("expected acct-a untouched, got %d", got)
	}
	if got := ledger.Balance("acct-b"); got != 0 {
		t.Fatalf("expected acct-b untouched, got %d", got)
	}
}

func TestTransferUnknownAccount(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Transfer(context.Background(), "acct-missing", "acct-b", 10)
	if !errors.Is(err, asset.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Transfer(context.Background(), "acct-a", "acct-b", 0); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if err := ledger.Transfer(context.Background(), "acct-a", "acct-b", -5); err == nil {
		t.Fatal("expected error for negative amount")
	}
}
