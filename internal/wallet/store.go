package wallet

import (
	"context"

	id "workhive/pkg/domain"
)

// Store persists organization wallets. GetByOrganization returns
// sentinel.ErrNotFound when the organization has no wallet.
type Store interface {
	Save(ctx context.Context, w *Wallet) error
	GetByOrganization(ctx context.Context, orgID id.OrganizationID) (*Wallet, error)
	DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error
}
