package organization

import (
	"context"
	"sync"
	"time"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	orgs    map[id.OrganizationID]*Organization
	members map[id.OrganizationID][]Member
	invites map[id.OrganizationID][]Invite
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orgs:    make(map[id.OrganizationID]*Organization),
		members: make(map[id.OrganizationID][]Member),
		invites: make(map[id.OrganizationID][]Invite),
	}
}

func (s *MemoryStore) Create(_ context.Context, org *Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orgs[org.ID]; exists {
		return sentinel.ErrConflict
	}
	copied := *org
	s.orgs[org.ID] = &copied
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, orgID id.OrganizationID) (*Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *org
	return &copied, nil
}

func (s *MemoryStore) MarkClosed(_ context.Context, orgID id.OrganizationID, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[orgID]
	if !ok {
		return sentinel.ErrNotFound
	}
	org.Close(closedAt)
	return nil
}

func (s *MemoryStore) AddMember(_ context.Context, member Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.OrganizationID] = append(s.members[member.OrganizationID], member)
	return nil
}

func (s *MemoryStore) AddInvite(_ context.Context, invite Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invites[invite.OrganizationID] = append(s.invites[invite.OrganizationID], invite)
	return nil
}

func (s *MemoryStore) CountMembers(_ context.Context, orgID id.OrganizationID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members[orgID]), nil
}

func (s *MemoryStore) CountInvites(_ context.Context, orgID id.OrganizationID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invites[orgID]), nil
}

func (s *MemoryStore) DeleteAssociations(_ context.Context, orgID id.OrganizationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, orgID)
	delete(s.invites, orgID)
	return nil
}

// MemoryArchiveStore is an in-memory ArchiveStore for tests and local
// development.
type MemoryArchiveStore struct {
	mu       sync.RWMutex
	archives map[id.ArchiveID]*Archive
}

func NewMemoryArchiveStore() *MemoryArchiveStore {
	return &MemoryArchiveStore{archives: make(map[id.ArchiveID]*Archive)}
}

func (s *MemoryArchiveStore) Create(_ context.Context, archive *Archive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.archives[archive.ID]; exists {
		return sentinel.ErrConflict
	}
	copied := *archive
	s.archives[archive.ID] = &copied
	return nil
}

func (s *MemoryArchiveStore) GetByID(_ context.Context, archiveID id.ArchiveID) (*Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	archive, ok := s.archives[archiveID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *archive
	return &copied, nil
}

func (s *MemoryArchiveStore) ListExpired(_ context.Context, asOf time.Time) ([]*Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expired := []*Archive{}
	for _, archive := range s.archives {
		if archive.ExpiredAt(asOf) {
			copied := *archive
			expired = append(expired, &copied)
		}
	}
	return expired, nil
}

func (s *MemoryArchiveStore) Delete(_ context.Context, archiveID id.ArchiveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.archives, archiveID)
	return nil
}
