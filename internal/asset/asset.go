// Package asset defines the asset-movement collaborator the vault core uses
// to custody and release deposits.
package asset

import (
	"context"

	apperrors "github.com/disciplr/vault/internal/platform/errors"
)

var (
	// ErrInsufficientBalance indicates the source account cannot cover the amount.
	ErrInsufficientBalance = apperrors.New(apperrors.CodeInsufficientBalance, "Insufficient balance")
	// ErrAccountNotFound indicates the source account does not exist.
	ErrAccountNotFound = apperrors.New(apperrors.CodeAccountNotFound, "Account not found")
)

// Transferrer moves a fixed amount between two accounts. A transfer either
// fully succeeds or has no effect; partial movement is never observable.
type Transferrer interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}
