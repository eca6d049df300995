package contracts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workhive/internal/closure"
	id "workhive/pkg/domain"
)

type failingStore struct{}

func (failingStore) Create(context.Context, *Contract) error { return nil }
func (failingStore) ListByOrganizationAndStatuses(context.Context, id.OrganizationID, []Status) ([]*Contract, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) DeleteByOrganization(context.Context, id.OrganizationID) error { return nil }

func seedContract(t *testing.T, store *MemoryStore, orgID id.OrganizationID, status Status, amount int64, currency string) *Contract {
	t.Helper()
	c := &Contract{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		Title:            "Разработка сайта",
		AmountMinorUnits: amount,
		Currency:         currency,
		Status:           status,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, store.Create(context.Background(), c))
	return c
}

func TestChecker_Check_BlocksOnActiveContract(t *testing.T) {
	store := NewMemoryStore()
	orgID := id.OrganizationID(uuid.New())
	contract := seedContract(t, store, orgID, StatusFunded, 150000, "USD")

	result, err := NewChecker(store).Check(context.Background(), orgID)
	require.NoError(t, err)

	require.Len(t, result.Blockers, 1)
	b := result.Blockers[0]
	assert.Equal(t, ModuleID, b.ModuleID)
	assert.Equal(t, closure.BlockerTypeFinancial, b.Type)
	assert.Equal(t, closure.SeverityBlocking, b.Severity)
	assert.Equal(t, contract.ID.String(), b.ID)
	assert.Equal(t, "Контракт на 1500 USD (статус: funded)", b.Description)
	assert.Empty(t, result.ArchivableData)
}

func TestChecker_Check_BlockingStatusSet(t *testing.T) {
	tests := []struct {
		status Status
		blocks bool
	}{
		{StatusDraft, false},
		{StatusAccepted, true},
		{StatusFunded, true},
		{StatusCompleted, true},
		{StatusDisputed, true},
		{StatusPaid, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			store := NewMemoryStore()
			orgID := id.OrganizationID(uuid.New())
			seedContract(t, store, orgID, tt.status, 5000, "EUR")

			result, err := NewChecker(store).Check(context.Background(), orgID)
			require.NoError(t, err)
			if tt.blocks {
				assert.Len(t, result.Blockers, 1)
			} else {
				assert.Empty(t, result.Blockers)
			}
		})
	}
}

func TestChecker_Check_CleanOrganization(t *testing.T) {
	store := NewMemoryStore()
	orgID := id.OrganizationID(uuid.New())
	seedContract(t, store, orgID, StatusPaid, 150000, "USD")

	result, err := NewChecker(store).Check(context.Background(), orgID)
	require.NoError(t, err)
	assert.Empty(t, result.Blockers)
	assert.Equal(t, ModuleName, result.ModuleName)
}

func TestChecker_Check_StoreFailurePropagates(t *testing.T) {
	_, err := NewChecker(failingStore{}).Check(context.Background(), id.OrganizationID(uuid.New()))
	require.Error(t, err)
}

func TestChecker_ArchiveOperationsAreNoOps(t *testing.T) {
	checker := NewChecker(NewMemoryStore())
	orgID := id.OrganizationID(uuid.New())
	archiveID := id.ArchiveID(uuid.New())

	require.NoError(t, checker.Archive(context.Background(), orgID, archiveID))
	require.NoError(t, checker.DeleteArchived(context.Background(), archiveID))
	require.NoError(t, checker.DeleteArchived(context.Background(), archiveID))
}
