package contracts

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusAccepted  Status = "accepted"
	StatusFunded    Status = "funded"
	StatusCompleted Status = "completed"
	StatusDisputed  Status = "disputed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// BlockingStatuses are the states in which a contract still carries an
// unsettled obligation and vetoes organization closure. Paid and cancelled
// contracts are terminal; drafts were never binding.
var BlockingStatuses = []Status{StatusAccepted, StatusFunded, StatusCompleted, StatusDisputed}

// Contract is a marketplace contract between the organization and a
// counterparty. Amounts are integer minor units; display conversion happens
// only when composing user-facing text.
type Contract struct {
	ID               uuid.UUID
	OrganizationID   id.OrganizationID
	Title            string
	AmountMinorUnits int64
	Currency         string
	Status           Status
	CreatedAt        time.Time
}
