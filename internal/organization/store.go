package organization

import (
	"context"
	"time"

	id "workhive/pkg/domain"
)

// Store persists organizations and their membership rows. Implementations
// return sentinel.ErrNotFound for missing organizations.
type Store interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, orgID id.OrganizationID) (*Organization, error)
	MarkClosed(ctx context.Context, orgID id.OrganizationID, closedAt time.Time) error

	AddMember(ctx context.Context, member Member) error
	AddInvite(ctx context.Context, invite Invite) error
	CountMembers(ctx context.Context, orgID id.OrganizationID) (int, error)
	CountInvites(ctx context.Context, orgID id.OrganizationID) (int, error)

	// DeleteAssociations removes membership and invite rows during live-data
	// purge. The organization row itself stays, marked closed.
	DeleteAssociations(ctx context.Context, orgID id.OrganizationID) error
}

// ArchiveStore persists closure archive records. The orchestration service
// owns these exclusively; module checkers only read them.
type ArchiveStore interface {
	Create(ctx context.Context, archive *Archive) error
	GetByID(ctx context.Context, archiveID id.ArchiveID) (*Archive, error)
	ListExpired(ctx context.Context, asOf time.Time) ([]*Archive, error)

	// Delete removes the archive record. Deleting a missing archive is a
	// no-op so expiry sweeps can be retried safely.
	Delete(ctx context.Context, archiveID id.ArchiveID) error
}
