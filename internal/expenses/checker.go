package expenses

import (
	"context"
	"fmt"

	"workhive/internal/closure"
	"workhive/internal/project"
	id "workhive/pkg/domain"
	"workhive/pkg/money"
)

const (
	ModuleID   = "expenses"
	ModuleName = "Расходы"
)

// ProjectDirectory lists the organization's projects. Satisfied by
// project.Store.
type ProjectDirectory interface {
	ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*project.Project, error)
}

// Checker blocks closure while any expense in any of the organization's
// projects still awaits a decision or a payout.
type Checker struct {
	store    Store
	projects ProjectDirectory
}

func NewChecker(store Store, projects ProjectDirectory) *Checker {
	return &Checker{store: store, projects: projects}
}

func (c *Checker) ModuleID() string   { return ModuleID }
func (c *Checker) ModuleName() string { return ModuleName }

func (c *Checker) Check(ctx context.Context, orgID id.OrganizationID) (closure.CheckResult, error) {
	projects, err := c.projects.ListByOrganization(ctx, orgID)
	if err != nil {
		return closure.CheckResult{}, fmt.Errorf("list projects: %w", err)
	}

	result := closure.EmptyResult(ModuleID, ModuleName)
	for _, p := range projects {
		unsettled, err := c.store.ListByProjectAndStatuses(ctx, p.ID, BlockingStatuses)
		if err != nil {
			return closure.CheckResult{}, fmt.Errorf("list unsettled expenses for project %s: %w", p.ID, err)
		}
		for _, e := range unsettled {
			result.Blockers = append(result.Blockers, closure.Blocker{
				ModuleID:       ModuleID,
				Type:           closure.BlockerTypeFinancial,
				Severity:       closure.SeverityBlocking,
				ID:             e.ID.String(),
				Title:          e.Title,
				Description:    fmt.Sprintf("Расход на %s (статус: %s)", money.Format(e.AmountMinorUnits, e.Currency), e.Status),
				ActionRequired: "Оплатите или отклоните расход",
				ActionURL:      "/projects/" + p.ID.String() + "/expenses/" + e.ID.String(),
			})
		}
	}
	return result, nil
}

func (c *Checker) Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
	return nil
}

func (c *Checker) DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error {
	return nil
}
