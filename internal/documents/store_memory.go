package documents

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu        sync.RWMutex
	documents []*Document
	versions  []*Version
	files     map[uuid.UUID]*File
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[uuid.UUID]*File)}
}

func (s *MemoryStore) CreateDocument(_ context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *d
	s.documents = append(s.documents, &copied)
	return nil
}

func (s *MemoryStore) CreateVersion(_ context.Context, v *Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *v
	s.versions = append(s.versions, &copied)
	return nil
}

func (s *MemoryStore) CreateFile(_ context.Context, f *File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *f
	s.files[f.ID] = &copied
	return nil
}

func (s *MemoryStore) ListByProject(_ context.Context, projectID id.ProjectID) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Document{}
	for _, d := range s.documents {
		if d.ProjectID == projectID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) LatestVersion(_ context.Context, documentID uuid.UUID) (*Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *Version
	for _, v := range s.versions {
		if v.DocumentID != documentID {
			continue
		}
		if latest == nil || v.Number > latest.Number {
			latest = v
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *MemoryStore) GetFile(_ context.Context, fileID uuid.UUID) (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[fileID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (s *MemoryStore) CountByProjects(_ context.Context, projectIDs []id.ProjectID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, d := range s.documents {
		if slices.Contains(projectIDs, d.ProjectID) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteByProjects(_ context.Context, projectIDs []id.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doomed := make(map[uuid.UUID]bool)
	kept := s.documents[:0]
	for _, d := range s.documents {
		if slices.Contains(projectIDs, d.ProjectID) {
			doomed[d.ID] = true
			continue
		}
		kept = append(kept, d)
	}
	s.documents = kept

	keptVersions := s.versions[:0]
	for _, v := range s.versions {
		if !doomed[v.DocumentID] {
			keptVersions = append(keptVersions, v)
		}
	}
	s.versions = keptVersions
	return nil
}

// MemoryArchiveStore is an in-memory ArchiveStore for tests and local
// development.
type MemoryArchiveStore struct {
	mu       sync.RWMutex
	archived []*ArchivedDocument
}

func NewMemoryArchiveStore() *MemoryArchiveStore {
	return &MemoryArchiveStore{}
}

func (s *MemoryArchiveStore) CreateArchived(_ context.Context, d *ArchivedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *d
	s.archived = append(s.archived, &copied)
	return nil
}

func (s *MemoryArchiveStore) ListByArchive(_ context.Context, archiveID id.ArchiveID) ([]*ArchivedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*ArchivedDocument{}
	for _, d := range s.archived {
		if d.ArchiveID == archiveID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *MemoryArchiveStore) DeleteByArchive(_ context.Context, archiveID id.ArchiveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.archived[:0]
	for _, d := range s.archived {
		if d.ArchiveID != archiveID {
			kept = append(kept, d)
		}
	}
	s.archived = kept
	return nil
}
