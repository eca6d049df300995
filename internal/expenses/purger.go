package expenses

import (
	"context"
	"fmt"

	id "workhive/pkg/domain"
)

// Purger deletes the module's live data when an organization closes. Must run
// before the project purger: once projects are gone the expense rows can no
// longer be found.
type Purger struct {
	store    Store
	projects ProjectDirectory
}

func NewPurger(store Store, projects ProjectDirectory) *Purger {
	return &Purger{store: store, projects: projects}
}

func (p *Purger) ModuleID() string { return ModuleID }

func (p *Purger) PurgeLive(ctx context.Context, orgID id.OrganizationID) error {
	projects, err := p.projects.ListByOrganization(ctx, orgID)
	if err != nil {
		return fmt.Errorf("purge expenses: list projects: %w", err)
	}
	projectIDs := make([]id.ProjectID, 0, len(projects))
	for _, project := range projects {
		projectIDs = append(projectIDs, project.ID)
	}
	if err := p.store.DeleteByProjects(ctx, projectIDs); err != nil {
		return fmt.Errorf("purge expenses: %w", err)
	}
	return nil
}
