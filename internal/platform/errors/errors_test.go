package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeVaultNotFound, "Vault not found")
	wrapped := fmt.Errorf("cancel vault: %w", New(CodeVaultNotFound, "Vault not found"))

	if !errors.Is(wrapped, sentinel) {
		t.Fatal("expected wrapped error to match sentinel by code")
	}

	other := New(CodeVaultNotActive, "Vault is not active")
	if errors.Is(wrapped, other) {
		t.Fatal("expected mismatch for different code")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk failure")
	err := Wrap(CodeTransferFailed, "Asset transfer failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to remain in the chain")
	}
	if err.Error() != "Asset transfer failed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeVaultNotCreator, "Only vault creator can cancel"))
	if got := CodeOf(err); got != CodeVaultNotCreator {
		t.Fatalf("expected CodeVaultNotCreator, got %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected CodeUnknown for plain error, got %q", got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("expected CodeUnknown for nil, got %q", got)
	}
}

func TestKindTaxonomy(t *testing.T) {
	tests := []struct {
		code Code
		kind Kind
	}{
		{CodeVaultNotFound, KindNotFound},
		{CodeNotFound, KindNotFound},
		{CodeVaultNotCreator, KindUnauthorized},
		{CodeVaultNotVerifier, KindUnauthorized},
		{CodeVaultNoVerifier, KindUnauthorized},
		{CodeIdentityUnauthorized, KindUnauthorized},
		{CodeVaultNotActive, KindInvalidState},
		{CodeVaultNotCancellable, KindInvalidState},
		{CodeVaultDeadlinePassed, KindInvalidState},
		{CodeVaultDeadlineNotReached, KindInvalidState},
		{CodeVaultReleaseMerged, KindInvalidState},
		{CodeVaultInvalidAmount, KindInvalidInput},
		{CodeVaultInvalidWindow, KindInvalidInput},
		{CodeVaultSameDestinations, KindInvalidInput},
		{CodeTransferFailed, KindTransferFailed},
		{CodeInsufficientBalance, KindTransferFailed},
		{CodeUnknown, KindUnknown},
	}

	for _, tc := range tests {
		if got := tc.code.Kind(); got != tc.kind {
			t.Fatalf("code %q: expected kind %q, got %q", tc.code, tc.kind, got)
		}
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		grpc codes.Code
	}{
		{CodeVaultNotFound, codes.NotFound},
		{CodeVaultNotCreator, codes.PermissionDenied},
		{CodeVaultNotActive, codes.FailedPrecondition},
		{CodeVaultInvalidAmount, codes.InvalidArgument},
		{CodeTransferFailed, codes.Aborted},
		{CodeUnknown, codes.Internal},
	}

	for _, tc := range tests {
		if got := tc.code.GRPCCode(); got != tc.grpc {
			t.Fatalf("code %q: expected grpc code %v, got %v", tc.code, tc.grpc, got)
		}
	}
}

func TestToGRPCStatusCarriesErrorInfo(t *testing.T) {
	err := WithMetadata(CodeVaultNotActive, "Vault is not active", map[string]string{"vault_id": "7"})

	st, ok := status.FromError(err.ToGRPCStatus())
	if !ok {
		t.Fatal("expected grpc status error")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", st.Code())
	}
	if st.Message() != "Vault is not active" {
		t.Fatalf("unexpected status message %q", st.Message())
	}
	if len(st.Details()) == 0 {
		t.Fatal("expected error details")
	}
}
