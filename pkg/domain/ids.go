// Package domain defines typed identifiers shared across modules.
//
// IDs are distinct uuid-backed types so the compiler rejects cross-type
// assignment (passing a ProjectID where an OrganizationID is expected).
// Parse helpers enforce the trust-boundary invariant: IDs must be valid,
// non-empty, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "workhive/pkg/domain-errors"
)

type (
	// OrganizationID identifies a tenant organization.
	OrganizationID uuid.UUID

	// ArchiveID identifies a closure archive record (the retention anchor).
	ArchiveID uuid.UUID

	// ProjectID identifies a project owned by an organization.
	ProjectID uuid.UUID

	// UserID identifies a platform user.
	UserID uuid.UUID
)

func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id ArchiveID) String() string      { return uuid.UUID(id).String() }
func (id ProjectID) String() string      { return uuid.UUID(id).String() }
func (id UserID) String() string         { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id OrganizationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id ArchiveID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ProjectID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsZero() bool         { return uuid.UUID(id) == uuid.Nil }

// ParseOrganizationID parses and validates an organization ID string.
func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := parseUUID(s, "organization id")
	return OrganizationID(u), err
}

// ParseArchiveID parses and validates an archive ID string.
func ParseArchiveID(s string) (ArchiveID, error) {
	u, err := parseUUID(s, "archive id")
	return ArchiveID(u), err
}

// ParseProjectID parses and validates a project ID string.
func ParseProjectID(s string) (ProjectID, error) {
	u, err := parseUUID(s, "project id")
	return ProjectID(u), err
}

// ParseUserID parses and validates a user ID string.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be the nil UUID")
	}
	return u, nil
}
