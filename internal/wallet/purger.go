package wallet

import (
	"context"
	"fmt"

	id "workhive/pkg/domain"
)

// Purger deletes the module's live data when an organization closes.
type Purger struct {
	store Store
}

func NewPurger(store Store) *Purger {
	return &Purger{store: store}
}

func (p *Purger) ModuleID() string { return ModuleID }

func (p *Purger) PurgeLive(ctx context.Context, orgID id.OrganizationID) error {
	if err := p.store.DeleteByOrganization(ctx, orgID); err != nil {
		return fmt.Errorf("purge wallet: %w", err)
	}
	return nil
}
