package domain

import (
	"strings"
	"time"
)

// VaultID uniquely identifies a vault. Identifiers are allocated by the
// store from a persisted monotonic counter and are never reused.
type VaultID uint64

// Vault is the custody record holding one creator's deposit pending a
// milestone or deadline outcome. Every field except Status and UpdatedAt
// is immutable after creation.
type Vault struct {
	ID                 VaultID
	Creator            string
	Amount             int64
	StartTimestamp     time.Time
	EndTimestamp       time.Time
	Commitment         Commitment
	Verifier           string // empty when no verifier was appointed
	SuccessDestination string
	FailureDestination string
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasVerifier reports whether a verifier was appointed at creation.
// Without one the validation path is permanently disabled and only the
// deadline redirect or a creator cancel can settle the vault.
func (v Vault) HasVerifier() bool {
	return v.Verifier != ""
}

// Transitioned returns a copy of the vault moved to the given status.
// It fails when the lifecycle does not permit the transition, which is
// the backstop that keeps terminal states terminal.
func (v Vault) Transitioned(to Status, now time.Time) (Vault, error) {
	if !isStatusTransitionAllowed(v.Status, to) {
		return Vault{}, ErrInvalidStatusTransition
	}
	v.Status = to
	v.UpdatedAt = now.UTC()
	return v, nil
}

// CreateVaultInput describes the deposit terms needed to create a vault.
type CreateVaultInput struct {
	Creator            string
	Amount             int64
	StartTimestamp     time.Time
	EndTimestamp       time.Time
	Commitment         Commitment
	Verifier           string
	SuccessDestination string
	FailureDestination string
}

// NewVault validates the deposit terms and returns an Active vault with
// no identifier; the store assigns one when the record is first persisted.
func NewVault(input CreateVaultInput, now func() time.Time) (Vault, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeCreateVaultInput(input)
	if err != nil {
		return Vault{}, err
	}

	createdAt := now().UTC()
	return Vault{
		Creator:            normalized.Creator,
		Amount:             normalized.Amount,
		StartTimestamp:     normalized.StartTimestamp.UTC(),
		EndTimestamp:       normalized.EndTimestamp.UTC(),
		Commitment:         normalized.Commitment,
		Verifier:           normalized.Verifier,
		SuccessDestination: normalized.SuccessDestination,
		FailureDestination: normalized.FailureDestination,
		Status:             StatusActive,
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}, nil
}

// NormalizeCreateVaultInput trims principals and validates the deposit terms.
func NormalizeCreateVaultInput(input CreateVaultInput) (CreateVaultInput, error) {
	input.Creator = strings.TrimSpace(input.Creator)
	input.Verifier = strings.TrimSpace(input.Verifier)
	input.SuccessDestination = strings.TrimSpace(input.SuccessDestination)
	input.FailureDestination = strings.TrimSpace(input.FailureDestination)

	if input.Creator == "" {
		return CreateVaultInput{}, ErrEmptyCreator
	}
	if input.Amount <= 0 {
		return CreateVaultInput{}, ErrInvalidAmount
	}
	if !input.StartTimestamp.Before(input.EndTimestamp) {
		return CreateVaultInput{}, ErrInvalidWindow
	}
	if input.SuccessDestination == "" || input.FailureDestination == "" {
		return CreateVaultInput{}, ErrEmptyDestination
	}
	if input.SuccessDestination == input.FailureDestination {
		return CreateVaultInput{}, ErrSameDestinations
	}
	return input, nil
}
