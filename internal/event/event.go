// Package event publishes vault transition outcomes to observers.
//
// Publication is append-only and best-effort: notifiers never block a
// transition and their failures never fail the call. Observers must not
// use events for control-flow decisions.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/disciplr/vault/internal/vault/domain"
)

// Topic names a vault transition outcome.
type Topic string

const (
	TopicVaultCreated       Topic = "vault_created"
	TopicMilestoneValidated Topic = "milestone_validated"
	TopicFundsRedirected    Topic = "funds_redirected"
	TopicVaultCancelled     Topic = "vault_cancelled"
)

// Event is the envelope delivered to observers.
type Event struct {
	ID        string          `json:"id"`
	Topic     Topic           `json:"topic"`
	VaultID   domain.VaultID  `json:"vault_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// VaultSnapshot is the creation event payload carrying the full record.
type VaultSnapshot struct {
	ID                 domain.VaultID `json:"id"`
	Creator            string         `json:"creator"`
	Amount             int64          `json:"amount"`
	StartTimestamp     time.Time      `json:"start_timestamp"`
	EndTimestamp       time.Time      `json:"end_timestamp"`
	Commitment         string         `json:"milestone_commitment"`
	Verifier           string         `json:"verifier,omitempty"`
	SuccessDestination string         `json:"success_destination"`
	FailureDestination string         `json:"failure_destination"`
	Status             domain.Status  `json:"status"`
}

// SnapshotOf maps a vault record into its event payload form.
func SnapshotOf(vault domain.Vault) VaultSnapshot {
	return VaultSnapshot{
		ID:                 vault.ID,
		Creator:            vault.Creator,
		Amount:             vault.Amount,
		StartTimestamp:     vault.StartTimestamp,
		EndTimestamp:       vault.EndTimestamp,
		Commitment:         vault.Commitment.String(),
		Verifier:           vault.Verifier,
		SuccessDestination: vault.SuccessDestination,
		FailureDestination: vault.FailureDestination,
		Status:             vault.Status,
	}
}

// Notifier publishes transition outcomes. Implementations must be safe for
// concurrent use and must never panic on malformed payloads.
type Notifier interface {
	Publish(ctx context.Context, evt Event)
}
