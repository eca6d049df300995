package expenses

import (
	"context"

	id "workhive/pkg/domain"
)

// Store persists expenses. Expenses are project-scoped; organization-wide
// operations take the organization's project IDs.
type Store interface {
	Create(ctx context.Context, e *Expense) error
	ListByProjectAndStatuses(ctx context.Context, projectID id.ProjectID, statuses []Status) ([]*Expense, error)
	CountByProjects(ctx context.Context, projectIDs []id.ProjectID) (int, error)
	DeleteByProjects(ctx context.Context, projectIDs []id.ProjectID) error
}
