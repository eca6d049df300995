package expenses

import (
	"time"

	"github.com/google/uuid"

	id "workhive/pkg/domain"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPayable  Status = "payable"
	StatusPaid     Status = "paid"
	StatusRejected Status = "rejected"
)

// BlockingStatuses are the states in which an expense still awaits a
// decision or a payout and vetoes organization closure.
var BlockingStatuses = []Status{StatusPending, StatusApproved, StatusPayable}

// Expense is a project-scoped reimbursement request. Amounts are integer
// minor units.
type Expense struct {
	ID               uuid.UUID
	ProjectID        id.ProjectID
	Title            string
	AmountMinorUnits int64
	Currency         string
	Status           Status
	CreatedAt        time.Time
}
