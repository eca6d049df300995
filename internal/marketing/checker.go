// Package marketing is the extension point for the campaigns domain in the
// closure pass. The module has no closure-relevant storage yet, so its
// checker reports nothing.
package marketing

import (
	"context"

	"workhive/internal/closure"
	id "workhive/pkg/domain"
)

const (
	ModuleID   = "marketing"
	ModuleName = "Маркетинг"
)

type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

func (c *Checker) ModuleID() string   { return ModuleID }
func (c *Checker) ModuleName() string { return ModuleName }

// TODO: report running ad campaigns as blockers once the campaigns module
// gets a store.
func (c *Checker) Check(ctx context.Context, orgID id.OrganizationID) (closure.CheckResult, error) {
	return closure.EmptyResult(ModuleID, ModuleName), nil
}

func (c *Checker) Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
	return nil
}

func (c *Checker) DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error {
	return nil
}
