package project

import (
	"context"

	id "workhive/pkg/domain"
)

// Store persists projects and their tasks.
type Store interface {
	CreateProject(ctx context.Context, p *Project) error
	CreateTask(ctx context.Context, t *Task) error

	// ListByOrganization returns the organization's projects in creation
	// order. Empty slice when the organization has none.
	ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*Project, error)

	CountProjects(ctx context.Context, orgID id.OrganizationID) (int, error)
	CountTasks(ctx context.Context, orgID id.OrganizationID) (int, error)

	// DeleteByOrganization removes all projects and tasks of the organization
	// during live-data purge.
	DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error
}
