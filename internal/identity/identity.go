// Package identity defines the caller-identity collaborator the vault core
// uses to prove a caller controls a principal before a transition proceeds.
package identity

import (
	"context"

	apperrors "github.com/disciplr/vault/internal/platform/errors"
)

// ErrUnauthorized indicates the calling context cannot prove control of the
// required principal. It carries no detail about why, on purpose.
var ErrUnauthorized = apperrors.New(apperrors.CodeIdentityUnauthorized, "Caller cannot act as principal")

// Gate proves a caller controls a given principal. Implementations must have
// no side effects on failure.
type Gate interface {
	RequireAuth(ctx context.Context, principal string) error
}
