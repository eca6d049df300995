package project

import (
	"context"
	"sync"

	id "workhive/pkg/domain"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	projects []*Project
	tasks    []*Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateProject(_ context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.projects = append(s.projects, &copied)
	return nil
}

func (s *MemoryStore) CreateTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *t
	s.tasks = append(s.tasks, &copied)
	return nil
}

func (s *MemoryStore) ListByOrganization(_ context.Context, orgID id.OrganizationID) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Project{}
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) CountProjects(_ context.Context, orgID id.OrganizationID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountTasks(_ context.Context, orgID id.OrganizationID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := make(map[id.ProjectID]bool)
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			owned[p.ID] = true
		}
	}
	count := 0
	for _, t := range s.tasks {
		if owned[t.ProjectID] {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteByOrganization(_ context.Context, orgID id.OrganizationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := make(map[id.ProjectID]bool)
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			owned[p.ID] = true
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if !owned[t.ProjectID] {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks
	return nil
}
