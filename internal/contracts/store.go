package contracts

import (
	"context"

	id "workhive/pkg/domain"
)

// Store persists contracts.
type Store interface {
	Create(ctx context.Context, c *Contract) error

	// ListByOrganizationAndStatuses returns the organization's contracts in
	// any of the given statuses, in creation order.
	ListByOrganizationAndStatuses(ctx context.Context, orgID id.OrganizationID, statuses []Status) ([]*Contract, error)

	DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error
}
