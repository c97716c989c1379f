// Package service implements the vault lifecycle state machine.
//
// Each operation is one atomic call: read the current record, validate
// preconditions, move funds, write the new record, emit an event. The
// service serializes state-changing calls so a racing second call always
// re-evaluates its preconditions against the committed post-transition
// status instead of a cached read.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/disciplr/vault/internal/asset"
	"github.com/disciplr/vault/internal/event"
	"github.com/disciplr/vault/internal/identity"
	apperrors "github.com/disciplr/vault/internal/platform/errors"
	"github.com/disciplr/vault/internal/platform/id"
	"github.com/disciplr/vault/internal/storage"
	"github.com/disciplr/vault/internal/vault/domain"
)

// DefaultCustodyAccount is the principal holding deposits while vaults are
// active.
const DefaultCustodyAccount = "vault-custody"

// Service is the vault state machine. It owns every status transition and
// pairs each money-moving side effect with the status write that records it.
type Service struct {
	mu      sync.Mutex
	store   storage.VaultStore
	assets  asset.Transferrer
	gate    identity.Gate
	events  event.Notifier
	clock   func() time.Time
	custody string
	tracer  trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithClock overrides the current-time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithNotifier sets the event notifier. Defaults to a no-op.
func WithNotifier(notifier event.Notifier) Option {
	return func(s *Service) {
		if notifier != nil {
			s.events = notifier
		}
	}
}

// WithCustodyAccount overrides the principal holding active deposits.
func WithCustodyAccount(principal string) Option {
	return func(s *Service) {
		if principal != "" {
			s.custody = principal
		}
	}
}

// NewService creates a vault service over the given collaborators.
func NewService(store storage.VaultStore, assets asset.Transferrer, gate identity.Gate, opts ...Option) *Service {
	s := &Service{
		store:   store,
		assets:  assets,
		gate:    gate,
		events:  event.NopNotifier{},
		clock:   time.Now,
		custody: DefaultCustodyAccount,
		tracer:  otel.Tracer("vault/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateVault validates the deposit terms, pulls the amount from the
// creator into custody, and persists a new Active record. On transfer
// failure no record is created; on a storage failure after the transfer the
// deposit is returned to the creator.
func (s *Service) CreateVault(ctx context.Context, input domain.CreateVaultInput) (domain.VaultID, error) {
	ctx, span := s.tracer.Start(ctx, "VaultService.CreateVault")
	defer span.End()

	vault, err := domain.NewVault(input, s.clock)
	if err != nil {
		return 0, spanErr(span, err)
	}
	if err := s.gate.RequireAuth(ctx, vault.Creator); err != nil {
		return 0, spanErr(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.assets.Transfer(ctx, vault.Creator, s.custody, vault.Amount); err != nil {
		return 0, spanErr(span, apperrors.Wrap(apperrors.CodeTransferFailed, "Asset transfer failed", err))
	}

	vaultID, err := s.store.Create(ctx, vault)
	if err != nil {
		s.reverse(ctx, s.custody, vault.Creator, vault.Amount)
		return 0, spanErr(span, err)
	}
	vault.ID = vaultID
	span.SetAttributes(attribute.Int64("vault.id", int64(vaultID)))

	s.publish(ctx, event.TopicVaultCreated, vaultID, event.SnapshotOf(vault))
	return vaultID, nil
}

// ValidateMilestone records the verifier's attestation. Validation and
// release are one step: on success the deposit moves to the success
// destination and the vault becomes Completed in the same call, so an
// attested vault is never exposed to a racing deadline redirect.
func (s *Service) ValidateMilestone(ctx context.Context, vaultID domain.VaultID, caller string) error {
	ctx, span := s.tracer.Start(ctx, "VaultService.ValidateMilestone",
		trace.WithAttributes(attribute.Int64("vault.id", int64(vaultID))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.getVault(ctx, vaultID)
	if err != nil {
		return spanErr(span, err)
	}

	if !vault.HasVerifier() {
		return spanErr(span, domain.ErrNoVerifier)
	}
	if err := s.gate.RequireAuth(ctx, caller); err != nil {
		return spanErr(span, err)
	}
	if caller != vault.Verifier {
		return spanErr(span, domain.ErrNotVerifier)
	}
	if vault.Status != domain.StatusActive {
		return spanErr(span, domain.ErrNotActive)
	}
	now := s.clock().UTC()
	if !now.Before(vault.EndTimestamp) {
		// At or after the deadline the redirect path owns the outcome.
		return spanErr(span, domain.ErrDeadlinePassed)
	}

	if err := s.settle(ctx, vault, domain.StatusCompleted, vault.SuccessDestination, now); err != nil {
		return spanErr(span, err)
	}
	s.publish(ctx, event.TopicMilestoneValidated, vaultID, nil)
	return nil
}

// ReleaseFunds exists for callers probing a split validate-then-release
// flow. Release is merged into ValidateMilestone, so the operation always
// fails: with NotFound for unknown vaults, otherwise with the merged-policy
// reason.
func (s *Service) ReleaseFunds(ctx context.Context, vaultID domain.VaultID) error {
	ctx, span := s.tracer.Start(ctx, "VaultService.ReleaseFunds",
		trace.WithAttributes(attribute.Int64("vault.id", int64(vaultID))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getVault(ctx, vaultID); err != nil {
		return spanErr(span, err)
	}
	return spanErr(span, domain.ErrReleaseMerged)
}

// RedirectFunds moves an expired deposit to the failure destination. It is
// permissionless: any caller may trigger the deadline sweep, and a repeat
// call fails with a not-active reason instead of double-transferring.
func (s *Service) RedirectFunds(ctx context.Context, vaultID domain.VaultID) error {
	ctx, span := s.tracer.Start(ctx, "VaultService.RedirectFunds",
		trace.WithAttributes(attribute.Int64("vault.id", int64(vaultID))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.getVault(ctx, vaultID)
	if err != nil {
		return spanErr(span, err)
	}

	if vault.Status != domain.StatusActive {
		return spanErr(span, domain.ErrNotActive)
	}
	now := s.clock().UTC()
	if now.Before(vault.EndTimestamp) {
		return spanErr(span, domain.ErrDeadlineNotReached)
	}

	if err := s.settle(ctx, vault, domain.StatusFailed, vault.FailureDestination, now); err != nil {
		return spanErr(span, err)
	}
	s.publish(ctx, event.TopicFundsRedirected, vaultID, nil)
	return nil
}

// CancelVault returns an active deposit to its creator. Only the creator
// may cancel, and only while the vault is Active.
func (s *Service) CancelVault(ctx context.Context, vaultID domain.VaultID, caller string) error {
	ctx, span := s.tracer.Start(ctx, "VaultService.CancelVault",
		trace.WithAttributes(attribute.Int64("vault.id", int64(vaultID))))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.getVault(ctx, vaultID)
	if err != nil {
		return spanErr(span, err)
	}

	if err := s.gate.RequireAuth(ctx, caller); err != nil {
		return spanErr(span, err)
	}
	if caller != vault.Creator {
		return spanErr(span, domain.ErrNotCreator)
	}
	if vault.Status != domain.StatusActive {
		return spanErr(span, domain.ErrNotCancellable)
	}

	if err := s.settle(ctx, vault, domain.StatusCancelled, vault.Creator, s.clock().UTC()); err != nil {
		return spanErr(span, err)
	}
	s.publish(ctx, event.TopicVaultCancelled, vaultID, nil)
	return nil
}

// GetVaultState returns the stored vault. Absence is a valid result, not
// an error, and no authorization applies to reads.
func (s *Service) GetVaultState(ctx context.Context, vaultID domain.VaultID) (domain.Vault, bool, error) {
	vault, err := s.store.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Vault{}, false, nil
		}
		return domain.Vault{}, false, err
	}
	return vault, true, nil
}

// settle moves the deposit out of custody and records the terminal status.
// When the status write fails the transfer is reversed so funds and status
// stay consistent.
func (s *Service) settle(ctx context.Context, vault domain.Vault, to domain.Status, destination string, now time.Time) error {
	transitioned, err := vault.Transitioned(to, now)
	if err != nil {
		return err
	}

	if err := s.assets.Transfer(ctx, s.custody, destination, vault.Amount); err != nil {
		return apperrors.Wrap(apperrors.CodeTransferFailed, "Asset transfer failed", err)
	}
	if err := s.store.Put(ctx, transitioned); err != nil {
		s.reverse(ctx, destination, s.custody, vault.Amount)
		return err
	}
	return nil
}

// reverse undoes a transfer after a failed state write. Best effort: a
// reversal failure is logged, never surfaced over the original error.
func (s *Service) reverse(ctx context.Context, from, to string, amount int64) {
	if err := s.assets.Transfer(ctx, from, to, amount); err != nil {
		log.Printf("reverse transfer of %d from %s to %s after failed write: %v", amount, from, to, err)
	}
}

func (s *Service) getVault(ctx context.Context, vaultID domain.VaultID) (domain.Vault, error) {
	vault, err := s.store.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Vault{}, domain.ErrVaultNotFound
		}
		return domain.Vault{}, err
	}
	return vault, nil
}

// publish emits a transition event. Publication is fire-and-forget; an id
// generation failure only degrades the envelope, never the call.
func (s *Service) publish(ctx context.Context, topic event.Topic, vaultID domain.VaultID, payload any) {
	eventID, err := id.NewID()
	if err != nil {
		log.Printf("generate event id: %v", err)
	}

	var raw json.RawMessage
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			log.Printf("encode %s payload: %v", topic, err)
		} else {
			raw = encoded
		}
	}

	s.events.Publish(ctx, event.Event{
		ID:        eventID,
		Topic:     topic,
		VaultID:   vaultID,
		Timestamp: s.clock().UTC(),
		Payload:   raw,
	})
}

func spanErr(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return err
}
