// Package memory provides an in-memory vault store for tests and
// in-process embeddings.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/disciplr/vault/internal/storage"
	"github.com/disciplr/vault/internal/vault/domain"
)

// Store keeps vault records in a map guarded by a mutex.
type Store struct {
	mu     sync.Mutex
	nextID domain.VaultID
	vaults map[domain.VaultID]domain.Vault
}

// NewStore creates an empty store. The first allocated identifier is 1.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		vaults: make(map[domain.VaultID]domain.Vault),
	}
}

// Create implements storage.VaultStore.
func (s *Store) Create(ctx context.Context, vault domain.Vault) (domain.VaultID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault.ID = s.nextID
	s.nextID++
	s.vaults[vault.ID] = vault
	return vault.ID, nil
}

// Get implements storage.VaultStore.
func (s *Store) Get(ctx context.Context, id domain.VaultID) (domain.Vault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, ok := s.vaults[id]
	if !ok {
		return domain.Vault{}, storage.ErrNotFound
	}
	return vault, nil
}

// Put implements storage.VaultStore.
func (s *Store) Put(ctx context.Context, vault domain.Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vaults[vault.ID] = vault
	return nil
}

// ListActiveEndingBefore implements storage.VaultStore.
func (s *Store) ListActiveEndingBefore(ctx context.Context, deadline time.Time, limit int) ([]domain.Vault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []domain.Vault
	for _, vault := range s.vaults {
		if vault.Status == domain.StatusActive && !vault.EndTimestamp.After(deadline) {
			expired = append(expired, vault)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ID < expired[j].ID })
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	return expired, nil
}
