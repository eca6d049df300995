package documents

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

// Document is a project-scoped document with an append-only version history.
type Document struct {
	ID        uuid.UUID
	ProjectID id.ProjectID
	Title     string
	CreatedAt time.Time
}

type Version struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Number     int
	FileID     uuid.UUID
	CreatedAt  time.Time
}

// File is the stored blob a version points to. Version rows may outlive
// their file record; archival tolerates the dangling reference.
type File struct {
	ID        uuid.UUID
	URL       string
	SizeBytes int64
	CreatedAt time.Time
}

// ArchivedDocument is the module-owned snapshot of one document's latest
// version, bound to a closure archive and its retention window.
type ArchivedDocument struct {
	ID            uuid.UUID
	ArchiveID     id.ArchiveID
	DocumentID    uuid.UUID
	ProjectID     id.ProjectID
	Title         string
	Version       int
	FileURL       string
	FileSizeBytes int64
	ArchivedAt    time.Time
	ExpiresAt     time.Time
}
