package organization

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Organization is the tenant entity. Closure is the only status transition
// this service performs: active -> closed, once, irreversibly.
type Organization struct {
	ID        id.OrganizationID
	Name      string
	Status    Status
	CreatedBy id.UserID
	CreatedAt time.Time
	ClosedAt  *time.Time
}

func (o *Organization) IsActive() bool { return o.Status == StatusActive }

// Close marks the organization closed at the given time.
func (o *Organization) Close(now time.Time) {
	o.Status = StatusClosed
	o.ClosedAt = &now
}

// Member is an organization membership row. Only counted and purged here;
// membership management lives elsewhere in the platform.
type Member struct {
	OrganizationID id.OrganizationID
	UserID         id.UserID
	Role           string
	JoinedAt       time.Time
}

// Invite is a pending membership invite.
type Invite struct {
	ID             uuid.UUID
	OrganizationID id.OrganizationID
	Email          string
	CreatedAt      time.Time
}

// Archive anchors one closure event's retention window. Created exactly once
// per closure, immediately before module archival; every per-module archived
// record references it by ID and copies its ExpiresAt.
type Archive struct {
	ID               id.ArchiveID
	OrganizationID   id.OrganizationID
	OrganizationName string
	ClosedBy         id.UserID
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// ExpiredAt reports whether the retention window has elapsed as of now.
func (a *Archive) ExpiredAt(now time.Time) bool {
	return !a.ExpiresAt.After(now)
}
