package event

import (
	"context"
	"testing"
	"time"

	"github.com/disciplr/vault/internal/vault/domain"
)

func TestMemoryNotifierRecordsInOrder(t *testing.T) {
	notifier := &MemoryNotifier{}
	notifier.Publish(context.Background(), Event{ID: "a", Topic: TopicVaultCreated, VaultID: 1})
	notifier.Publish(context.Background(), Event{ID: "b", Topic: TopicVaultCancelled, VaultID: 1})

	events := notifier.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Topic != TopicVaultCreated || events[1].Topic != TopicVaultCancelled {
		t.Fatalf("unexpected topics: %q, %q", events[0].Topic, events[1].Topic)
	}
}

func TestMemoryNotifierEventsReturnsCopy(t *testing.T) {
	notifier := &MemoryNotifier{}
	notifier.Publish(context.Background(), Event{ID: "a", Topic: TopicVaultCreated})

	first := notifier.Events()
	first[0].ID = "mutated"

	if got := notifier.Events()[0].ID; got != "a" {
		t.Fatalf("expected stored event unchanged, got id %q", got)
	}
}

func TestSnapshotOfCarriesFullRecord(t *testing.T) {
	vault := domain.Vault{
		ID:                 7,
		Creator:            "acct-creator",
		Amount:             250,
		StartTimestamp:     time.Unix(1000, 0).UTC(),
		EndTimestamp:       time.Unix(2000, 0).UTC(),
		Commitment:         domain.NewCommitment([]byte("criteria")),
		Verifier:           "acct-verifier",
		SuccessDestination: "acct-success",
		FailureDestination: "acct-failure",
		Status:             domain.StatusActive,
	}

	snapshot := SnapshotOf(vault)
	if snapshot.ID != vault.ID {
		t.Fatalf("id = %d, want %d", snapshot.ID, vault.ID)
	}
	if snapshot.Commitment != vault.Commitment.String() {
		t.Fatalf("commitment = %q, want %q", snapshot.Commitment, vault.Commitment.String())
	}
	if snapshot.Verifier != "acct-verifier" {
		t.Fatalf("verifier = %q, want %q", snapshot.Verifier, "acct-verifier")
	}
	if snapshot.Status != domain.StatusActive {
		t.Fatalf("status = %q, want %q", snapshot.Status, domain.StatusActive)
	}
}
