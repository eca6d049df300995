package organization

import (
	"context"
	"fmt"

	id "workhive/pkg/domain"
)

// ModuleID identifies the organization module in purge logs.
const ModuleID = "organization"

// Purger removes membership and invite rows when the organization closes.
// The organization row itself stays, marked closed by the service.
type Purger struct {
	store Store
}

func NewPurger(store Store) *Purger {
	return &Purger{store: store}
}

func (p *Purger) ModuleID() string { return ModuleID }

func (p *Purger) PurgeLive(ctx context.Context, orgID id.OrganizationID) error {
	if err := p.store.DeleteAssociations(ctx, orgID); err != nil {
		return fmt.Errorf("purge organization associations: %w", err)
	}
	return nil
}
