package expenses

import (
	"context"
	"slices"
	"sync"

	id "workhive/pkg/domain"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	expenses []*Expense
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(_ context.Context, e *Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *e
	s.expenses = append(s.expenses, &copied)
	return nil
}

func (s *MemoryStore) ListByProjectAndStatuses(_ context.Context, projectID id.ProjectID, statuses []Status) ([]*Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Expense{}
	for _, e := range s.expenses {
		if e.ProjectID == projectID && slices.Contains(statuses, e.Status) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) CountByProjects(_ context.Context, projectIDs []id.ProjectID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, e := range s.expenses {
		if slices.Contains(projectIDs, e.ProjectID) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteByProjects(_ context.Context, projectIDs []id.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if !slices.Contains(projectIDs, e.ProjectID) {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	return nil
}
