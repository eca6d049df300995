package project

import (
	"context"
	"fmt"

	id "workhive/pkg/domain"
)

// ModuleID identifies the projects module in purge logs.
const ModuleID = "projects"

// Purger deletes the organization's projects and tasks when it closes. Runs
// after the project-scoped modules (expenses, documents) have purged theirs.
type Purger struct {
	store Store
}

func NewPurger(store Store) *Purger {
	return &Purger{store: store}
}

func (p *Purger) ModuleID() string { return ModuleID }

func (p *Purger) PurgeLive(ctx context.Context, orgID id.OrganizationID) error {
	if err := p.store.DeleteByOrganization(ctx, orgID); err != nil {
		return fmt.Errorf("purge projects: %w", err)
	}
	return nil
}
