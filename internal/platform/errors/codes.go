// Package errors provides structured error handling for the vault service.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Vault lookup errors
	CodeVaultNotFound Code = "VAULT_NOT_FOUND"

	// Authorization errors
	CodeIdentityUnauthorized Code = "IDENTITY_UNAUTHORIZED"
	CodeVaultNotCreator      Code = "VAULT_NOT_CREATOR"
	CodeVaultNotVerifier     Code = "VAULT_NOT_VERIFIER"
	CodeVaultNoVerifier      Code = "VAULT_NO_VERIFIER"

	// State-machine errors
	CodeVaultNotActive          Code = "VAULT_NOT_ACTIVE"
	CodeVaultNotCancellable     Code = "VAULT_NOT_CANCELLABLE"
	CodeVaultDeadlinePassed     Code = "VAULT_DEADLINE_PASSED"
	CodeVaultDeadlineNotReached Code = "VAULT_DEADLINE_NOT_REACHED"
	CodeVaultReleaseMerged      Code = "VAULT_RELEASE_MERGED"
	CodeVaultInvalidTransition  Code = "VAULT_INVALID_STATUS_TRANSITION"

	// Creation input errors
	CodeVaultInvalidAmount    Code = "VAULT_INVALID_AMOUNT"
	CodeVaultInvalidWindow    Code = "VAULT_INVALID_WINDOW"
	CodeVaultEmptyCreator     Code = "VAULT_EMPTY_CREATOR"
	CodeVaultEmptyDestination Code = "VAULT_EMPTY_DESTINATION"
	CodeVaultSameDestinations Code = "VAULT_SAME_DESTINATIONS"

	// Asset movement errors
	CodeTransferFailed      Code = "TRANSFER_FAILED"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeAccountNotFound     Code = "ACCOUNT_NOT_FOUND"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// Kind groups codes into the coarse failure taxonomy callers branch on.
type Kind string

const (
	KindUnknown        Kind = "UNKNOWN"
	KindNotFound       Kind = "NOT_FOUND"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindInvalidState   Kind = "INVALID_STATE"
	KindInvalidInput   Kind = "INVALID_INPUT"
	KindTransferFailed Kind = "TRANSFER_FAILED"
)

// Kind maps each code to its failure taxonomy bucket.
func (c Code) Kind() Kind {
	switch c {
	case CodeVaultNotFound, CodeNotFound, CodeAccountNotFound:
		return KindNotFound

	case CodeIdentityUnauthorized,
		CodeVaultNotCreator,
		CodeVaultNotVerifier,
		CodeVaultNoVerifier:
		return KindUnauthorized

	case CodeVaultNotActive,
		CodeVaultNotCancellable,
		CodeVaultDeadlinePassed,
		CodeVaultDeadlineNotReached,
		CodeVaultReleaseMerged,
		CodeVaultInvalidTransition:
		return KindInvalidState

	case CodeVaultInvalidAmount,
		CodeVaultInvalidWindow,
		CodeVaultEmptyCreator,
		CodeVaultEmptyDestination,
		CodeVaultSameDestinations:
		return KindInvalidInput

	case CodeTransferFailed, CodeInsufficientBalance:
		return KindTransferFailed

	default:
		return KindUnknown
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c.Kind() {
	case KindNotFound:
		return codes.NotFound
	case KindUnauthorized:
		return codes.PermissionDenied
	case KindInvalidState:
		return codes.FailedPrecondition
	case KindInvalidInput:
		return codes.InvalidArgument
	case KindTransferFailed:
		return codes.Aborted
	default:
		return codes.Internal
	}
}
