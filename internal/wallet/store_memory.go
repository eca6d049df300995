package wallet

import (
	"context"
	"sync"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	wallets map[id.OrganizationID]*Wallet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wallets: make(map[id.OrganizationID]*Wallet)}
}

func (s *MemoryStore) Save(_ context.Context, w *Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *w
	s.wallets[w.OrganizationID] = &copied
	return nil
}

func (s *MemoryStore) GetByOrganization(_ context.Context, orgID id.OrganizationID) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[orgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (s *MemoryStore) DeleteByOrganization(_ context.Context, orgID id.OrganizationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wallets, orgID)
	return nil
}
