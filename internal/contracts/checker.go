package contracts

import (
	"context"
	"fmt"

	"workhive/internal/closure"
	id "workhive/pkg/domain"
	"workhive/pkg/money"
)

const (
	ModuleID   = "contracts"
	ModuleName = "Контракты"
)

// Checker blocks closure while any contract carries an unsettled obligation.
// Contracts are never archived: they are either blocking or already terminal.
type Checker struct {
	store Store
}

func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

func (c *Checker) ModuleID() string   { return ModuleID }
func (c *Checker) ModuleName() string { return ModuleName }

func (c *Checker) Check(ctx context.Context, orgID id.OrganizationID) (closure.CheckResult, error) {
	active, err := c.store.ListByOrganizationAndStatuses(ctx, orgID, BlockingStatuses)
	if err != nil {
		return closure.CheckResult{}, fmt.Errorf("list active contracts: %w", err)
	}

	result := closure.EmptyResult(ModuleID, ModuleName)
	for _, contract := range active {
		result.Blockers = append(result.Blockers, closure.Blocker{
			ModuleID:       ModuleID,
			Type:           closure.BlockerTypeFinancial,
			Severity:       closure.SeverityBlocking,
			ID:             contract.ID.String(),
			Title:          contract.Title,
			Description:    fmt.Sprintf("Контракт на %s (статус: %s)", money.Format(contract.AmountMinorUnits, contract.Currency), contract.Status),
			ActionRequired: "Завершите или расторгните контракт",
			ActionURL:      "/contracts/" + contract.ID.String(),
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
