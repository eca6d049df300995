package wallet

import (
	"context"
	"errors"
	"fmt"

	"workhive/internal/closure"
	id "workhive/pkg/domain"
	"workhive/pkg/money"
	"workhive/pkg/platform/sentinel"
)

const (
	ModuleID   = "wallet"
	ModuleName = "Кошелёк"
)

// Checker blocks closure while the organization's wallet holds a positive
// balance. An organization without a wallet has nothing to withdraw.
type Checker struct {
	store Store
}

func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

func (c *Checker) ModuleID() string   { return ModuleID }
func (c *Checker) ModuleName() string { return ModuleName }

func (c *Checker) Check(ctx context.Context, orgID id.OrganizationID) (closure.CheckResult, error) {
	result := closure.EmptyResult(ModuleID, ModuleName)

	w, err := c.store.GetByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return result, nil
		}
		return closure.CheckResult{}, fmt.Errorf("get wallet: %w", err)
	}

	if w.HasFunds() {
		result.Blockers = append(result.Blockers, closure.Blocker{
			ModuleID:       ModuleID,
			Type:           closure.BlockerTypeFinancial,
			Severity:       closure.SeverityBlocking,
			ID:             w.ID.String(),
			Title:          "Средства на кошельке",
			Description:    fmt.Sprintf("На балансе %s", money.Format(w.BalanceMinorUnits, w.Currency)),
			ActionRequired: "Выведите средства с кошелька",
			ActionURL:      "/wallet",
		})
	}
	return result, nil
}

func (c *Checker) Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
	return nil
}

func (c *Checker) DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error {
	return nil
}
