package service

import (
	"context"

	"workhive/internal/closure"
	"workhive/internal/project"
	id "workhive/pkg/domain"
	dErrors "workhive/pkg/domain-errors"
)

type MembershipCounter interface {
	CountMembers(ctx context.Context, orgID id.OrganizationID) (int, error)
	CountInvites(ctx context.Context, orgID id.OrganizationID) (int, error)
}

type ProjectCounter interface {
	ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*project.Project, error)
	CountProjects(ctx context.Context, orgID id.OrganizationID) (int, error)
	CountTasks(ctx context.Context, orgID id.OrganizationID) (int, error)
}

type ProjectScopedCounter interface {
	CountByProjects(ctx context.Context, projectIDs []id.ProjectID) (int, error)
}

// ImpactCounter aggregates what closing an organization will delete. Counts
// come from the domain stores, not from the checkers.
type ImpactCounter struct {
	memberships MembershipCounter
	projects    ProjectCounter
	documents   ProjectScopedCounter
	expenses    ProjectScopedCounter
}

func NewImpactCounter(memberships MembershipCounter, projects ProjectCounter, documents, expenses ProjectScopedCounter) *ImpactCounter {
	return &ImpactCounter{
		memberships: memberships,
		projects:    projects,
		documents:   documents,
		expenses:    expenses,
	}
}

func (c *ImpactCounter) Count(ctx context.Context, orgID id.OrganizationID) (closure.Impact, error) {
	var impact closure.Impact
	var err error

	if impact.Projects, err = c.projects.CountProjects(ctx, orgID); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count projects")
	}
	if impact.Tasks, err = c.projects.CountTasks(ctx, orgID); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count tasks")
	}
	if impact.Members, err = c.memberships.CountMembers(ctx, orgID); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count members")
	}
	if impact.Invites, err = c.memberships.CountInvites(ctx, orgID); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count invites")
	}

	projects, err := c.projects.ListByOrganization(ctx, orgID)
	if err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list projects")
	}
	projectIDs := make([]id.ProjectID, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	if impact.Documents, err = c.documents.CountByProjects(ctx, projectIDs); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count documents")
	}
	if impact.Expenses, err = c.expenses.CountByProjects(ctx, projectIDs); err != nil {
		return closure.Impact{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count expenses")
	}
	return impact, nil
}
