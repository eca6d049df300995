package documents

import (
	"context"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

// Store persists live documents, versions, and file records.
type Store interface {
	CreateDocument(ctx context.Context, d *Document) error
	CreateVersion(ctx context.Context, v *Version) error
	CreateFile(ctx context.Context, f *File) error

	ListByProject(ctx context.Context, projectID id.ProjectID) ([]*Document, error)

	// LatestVersion returns the highest-numbered version of the document, or
	// sentinel.ErrNotFound when the document has no versions.
	LatestVersion(ctx context.Context, documentID uuid.UUID) (*Version, error)

	// GetFile returns sentinel.ErrNotFound when the file record is missing.
	GetFile(ctx context.Context, fileID uuid.UUID) (*File, error)

	CountByProjects(ctx context.Context, projectIDs []id.ProjectID) (int, error)
	DeleteByProjects(ctx context.Context, projectIDs []id.ProjectID) error
}

// ArchiveStore persists the module's archived document snapshots.
type ArchiveStore interface {
	CreateArchived(ctx context.Context, d *ArchivedDocument) error
	ListByArchive(ctx context.Context, archiveID id.ArchiveID) ([]*ArchivedDocument, error)

	// DeleteByArchive removes all snapshots for the archive. Deleting an
	// already-cleaned archive is a no-op.
	DeleteByArchive(ctx context.Context, archiveID id.ArchiveID) error
}
