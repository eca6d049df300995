package contracts

import (
	"context"
	"slices"
	"sync"

	id "workhive/pkg/domain"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	contracts []*Contract
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, c *Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.contracts = append(s.contracts, &copied)
	return nil
}

func (s *MemoryStore) ListByOrganizationAndStatuses(_ context.Context, orgID id.OrganizationID, statuses []Status) ([]*Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Contract{}
	for _, c := range s.contracts {
		if c.OrganizationID == orgID && slices.Contains(statuses, c.Status) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) DeleteByOrganization(_ context.Context, orgID id.OrganizationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.contracts[:0]
	for _, c := range s.contracts {
		if c.OrganizationID != orgID {
			kept = append(kept, c)
		}
	}
	s.contracts = kept
	return nil
}
