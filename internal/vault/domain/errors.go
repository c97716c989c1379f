package domain

import apperrors "github.com/disciplr/vault/internal/platform/errors"

var (
	// ErrVaultNotFound indicates the referenced vault id has no record.
	ErrVaultNotFound = apperrors.New(apperrors.CodeVaultNotFound, "Vault not found")
	// ErrNotCreator indicates a cancel attempt by someone other than the creator.
	ErrNotCreator = apperrors.New(apperrors.CodeVaultNotCreator, "Only vault creator can cancel")
	// ErrNotVerifier indicates a validation attempt by someone other than the verifier.
	ErrNotVerifier = apperrors.New(apperrors.CodeVaultNotVerifier, "Only vault verifier can validate")
	// ErrNoVerifier indicates a validation attempt on a vault created without a verifier.
	ErrNoVerifier = apperrors.New(apperrors.CodeVaultNoVerifier, "Vault has no verifier")
	// ErrNotCancellable indicates a cancel attempt on a vault past its Active state.
	ErrNotCancellable = apperrors.New(apperrors.CodeVaultNotCancellable, "Only Active vaults can be cancelled")
	// ErrNotActive indicates a transition attempt on a vault past its Active state.
	ErrNotActive = apperrors.New(apperrors.CodeVaultNotActive, "Vault is not active")
	// ErrDeadlinePassed indicates a validation attempt at or after the deadline.
	ErrDeadlinePassed = apperrors.New(apperrors.CodeVaultDeadlinePassed, "Deadline has passed")
	// ErrDeadlineNotReached indicates a redirect attempt before the deadline.
	ErrDeadlineNotReached = apperrors.New(apperrors.CodeVaultDeadlineNotReached, "Deadline has not been reached")
	// ErrReleaseMerged indicates a release attempt under the merged validation policy.
	ErrReleaseMerged = apperrors.New(apperrors.CodeVaultReleaseMerged, "Funds are released when the milestone is validated")
	// ErrInvalidStatusTransition indicates a disallowed vault status change.
	ErrInvalidStatusTransition = apperrors.New(apperrors.CodeVaultInvalidTransition, "Vault status transition is not allowed")

	// ErrInvalidAmount indicates a non-positive deposit amount.
	ErrInvalidAmount = apperrors.New(apperrors.CodeVaultInvalidAmount, "Amount must be positive")
	// ErrInvalidWindow indicates start/end timestamps out of order.
	ErrInvalidWindow = apperrors.New(apperrors.CodeVaultInvalidWindow, "Start timestamp must be before end timestamp")
	// ErrEmptyCreator indicates a missing creator principal.
	ErrEmptyCreator = apperrors.New(apperrors.CodeVaultEmptyCreator, "Creator is required")
	// ErrEmptyDestination indicates a missing success or failure destination.
	ErrEmptyDestination = apperrors.New(apperrors.CodeVaultEmptyDestination, "Success and failure destinations are required")
	// ErrSameDestinations indicates identical success and failure destinations.
	ErrSameDestinations = apperrors.New(apperrors.CodeVaultSameDestinations, "Success and failure destinations must differ")
)
