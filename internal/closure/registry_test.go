package closure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "workhive/pkg/domain"
)

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

// fakeChecker is a scriptable checker for registry tests.
type fakeChecker struct {
	moduleID   string
	moduleName string

	checkFn   func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error)
	archiveFn func(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error
	deleteFn  func(ctx context.Context, archiveID id.ArchiveID) error

	archiveCalls int
	deleteCalls  int
}

func (f *fakeChecker) ModuleID() string   { return f.moduleID }
func (f *fakeChecker) ModuleName() string { return f.moduleName }

func (f *fakeChecker) Check(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
	if f.checkFn != nil {
		return f.checkFn(ctx, orgID)
	}
	return EmptyResult(f.moduleID, f.moduleName), nil
}

func (f *fakeChecker) Archive(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
	f.archiveCalls++
	if f.archiveFn != nil {
		return f.archiveFn(ctx, orgID, archiveID)
	}
	return nil
}

func (f *fakeChecker) DeleteArchived(ctx context.Context, archiveID id.ArchiveID) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, archiveID)
	}
	return nil
}

func blockingResult(moduleID, moduleName, entityID string) CheckResult {
	return CheckResult{
		ModuleID:   moduleID,
		ModuleName: moduleName,
		Blockers: []Blocker{{
			ModuleID: moduleID,
			Type:     BlockerTypeFinancial,
			Severity: SeverityBlocking,
			ID:       entityID,
			Title:    "unsettled obligation",
		}},
		ArchivableData: []ArchivableData{},
	}
}

func newTestRegistry(opts ...RegistryOption) *Registry {
	opts = append([]RegistryOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewRegistry(opts...)
}

func TestRegistry_RunAllChecks_RegistrationOrder(t *testing.T) {
	reg := newTestRegistry()
	for _, m := range []string{"wallet", "contracts", "documents", "expenses"} {
		reg.Register(&fakeChecker{moduleID: m, moduleName: m})
	}

	orgID := id.OrganizationID(newUUID(t))
	results := reg.RunAllChecks(context.Background(), orgID)

	require.Len(t, results, 4)
	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.ModuleID)
	}
	assert.Equal(t, []string{"wallet", "contracts", "documents", "expenses"}, got)
	assert.Equal(t, []string{"wallet", "contracts", "documents", "expenses"}, reg.RegisteredModules())
}

func TestRegistry_RunAllChecks_FailureIsolation(t *testing.T) {
	tests := []struct {
		name  string
		fault func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error)
	}{
		{
			name: "checker error",
			fault: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
				return CheckResult{}, errors.New("database gone")
			},
		},
		{
			name: "checker panic",
			fault: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
				panic("nil map write")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newTestRegistry()
			reg.Register(&fakeChecker{
				moduleID: "contracts", moduleName: "Контракты",
				checkFn: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
					return blockingResult("contracts", "Контракты", "c-1"), nil
				},
			})
			reg.Register(&fakeChecker{moduleID: "expenses", moduleName: "Расходы", checkFn: tt.fault})
			reg.Register(&fakeChecker{
				moduleID: "wallet", moduleName: "Кошелёк",
				checkFn: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
					return blockingResult("wallet", "Кошелёк", "w-1"), nil
				},
			})

			results := reg.RunAllChecks(context.Background(), id.OrganizationID(newUUID(t)))

			require.Len(t, results, 3)
			assert.Len(t, results[0].Blockers, 1)
			// broken module degrades to an empty result, never aborts the pass
			assert.Equal(t, EmptyResult("expenses", "Расходы"), results[1])
			assert.Len(t, results[2].Blockers, 1)
			assert.True(t, HasBlocking(results))
		})
	}
}

func TestRegistry_RunAllChecks_Timeout(t *testing.T) {
	reg := newTestRegistry(WithCheckTimeout(10 * time.Millisecond))
	reg.Register(&fakeChecker{
		moduleID: "documents", moduleName: "Документы",
		checkFn: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
			select {
			case <-ctx.Done():
				return CheckResult{}, ctx.Err()
			case <-time.After(time.Second):
				return blockingResult("documents", "Документы", "d-1"), nil
			}
		},
	})

	results := reg.RunAllChecks(context.Background(), id.OrganizationID(newUUID(t)))

	require.Len(t, results, 1)
	assert.Equal(t, EmptyResult("documents", "Документы"), results[0])
}

func TestRegistry_Register_OverwriteKeepsPosition(t *testing.T) {
	reg := newTestRegistry()
	reg.Register(&fakeChecker{moduleID: "contracts", moduleName: "Контракты"})
	reg.Register(&fakeChecker{moduleID: "expenses", moduleName: "Расходы"})

	replacement := &fakeChecker{
		moduleID: "contracts", moduleName: "Контракты",
		checkFn: func(ctx context.Context, orgID id.OrganizationID) (CheckResult, error) {
			return blockingResult("contracts", "Контракты", "c-2"), nil
		},
	}
	reg.Register(replacement)

	assert.Equal(t, []string{"contracts", "expenses"}, reg.RegisteredModules())

	results := reg.RunAllChecks(context.Background(), id.OrganizationID(newUUID(t)))
	require.Len(t, results, 2)
	require.Len(t, results[0].Blockers, 1)
	assert.Equal(t, "c-2", results[0].Blockers[0].ID)
}

func TestRegistry_ArchiveAll_ContinuesPastFailure(t *testing.T) {
	first := &fakeChecker{moduleID: "contracts", moduleName: "Контракты"}
	broken := &fakeChecker{
		moduleID: "documents", moduleName: "Документы",
		archiveFn: func(ctx context.Context, orgID id.OrganizationID, archiveID id.ArchiveID) error {
			return errors.New("storage unavailable")
		},
	}
	last := &fakeChecker{moduleID: "expenses", moduleName: "Расходы"}

	reg := newTestRegistry()
	reg.Register(first)
	reg.Register(broken)
	reg.Register(last)

	reg.ArchiveAll(context.Background(), id.OrganizationID(newUUID(t)), id.ArchiveID(newUUID(t)))

	assert.Equal(t, 1, first.archiveCalls)
	assert.Equal(t, 1, broken.archiveCalls)
	assert.Equal(t, 1, last.archiveCalls)
}

func TestRegistry_DeleteAllArchived_Idempotent(t *testing.T) {
	cleaned := map[string]bool{}
	checker := &fakeChecker{
		moduleID: "documents", moduleName: "Документы",
		deleteFn: func(ctx context.Context, archiveID id.ArchiveID) error {
			// module contract: deleting an already-cleaned archive is a no-op
			cleaned[archiveID.String()] = true
			return nil
		},
	}
	panicky := &fakeChecker{
		moduleID: "marketing", moduleName: "Маркетинг",
		deleteFn: func(ctx context.Context, archiveID id.ArchiveID) error {
			panic("unimplemented path")
		},
	}

	reg := newTestRegistry()
	reg.Register(checker)
	reg.Register(panicky)

	archiveID := id.ArchiveID(newUUID(t))
	reg.DeleteAllArchived(context.Background(), archiveID)
	reg.DeleteAllArchived(context.Background(), archiveID)

	assert.Equal(t, 2, checker.deleteCalls)
	assert.Equal(t, 2, panicky.deleteCalls)
	assert.True(t, cleaned[archiveID.String()])
}
