package wallet

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

// Wallet is the organization's balance account. One wallet per organization;
// the balance is integer minor units and never floating point.
type Wallet struct {
	ID                uuid.UUID
	OrganizationID    id.OrganizationID
	BalanceMinorUnits int64
	Currency          string
	UpdatedAt         time.Time
}

func (w *Wallet) HasFunds() bool { return w.BalanceMinorUnits > 0 }
