// Package closure implements the organization closure orchestration engine:
// the value types exchanged between domain modules and the coordinator, the
// Checker capability contract each module implements, and the Registry that
// runs all checkers with per-module failure isolation.
//
// The engine decides nothing about live data deletion itself; it reports
// blocking conditions, snapshots salvageable data into a retention-bound
// archive, and purges those snapshots once the archive expires. Deleting a
// module's live data remains that module's own store responsibility, invoked
// by the orchestration service after the engine approves closure.
package closure

import (
	"context"

	id "workhive/pkg/domain"
)

// Checker is the capability contract a domain module implements to take part
// in organization closure. Each module registers exactly one checker at
// startup; the checker holds no mutable state beyond its underlying stores.
type Checker interface {
	// ModuleID returns the stable identifier of the module (e.g. "contracts").
	ModuleID() string

	// ModuleName returns the human-readable module name for UI surfaces.
	ModuleName() string

	// Check inspects the module's live data for the organization and reports
	// blocking conditions and archivable data. It must be side-effect-free
	// and idempotent: repeated calls with no intervening state change return
	// equal results.
	Check(ctx context.Context, orgID id.OrganizationID) (CheckResult, error)

	// Archive snapshots every entity the module considers archivable into
	// module-owned archived records referencing archiveID, copying ExpiresAt
	// from the organization archive. Called once per closure; at-least-once
	// semantics are acceptable on retry.
	Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error

	// DeleteArchived permanently removes the module's archived records for
	// archiveID. Must be idempotent: deleting an already-cleaned archive is
	// a no-op.
	DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error
}
