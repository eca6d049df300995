package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workhive/internal/closure"
	id "workhive/pkg/domain"
)

func seedWallet(t *testing.T, store *MemoryStore, orgID id.OrganizationID, balance int64) *Wallet {
	t.Helper()
	w := &Wallet{
		ID:                uuid.New(),
		OrganizationID:    orgID,
		BalanceMinorUnits: balance,
		Currency:          "USD",
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, store.Save(context.Background(), w))
	return w
}

func TestChecker_Check_PositiveBalanceBlocks(t *testing.T) {
	store := NewMemoryStore()
	orgID := id.OrganizationID(uuid.New())
	w := seedWallet(t, store, orgID, 150000)

	result, err := NewChecker(store).Check(context.Background(), orgID)
	require.NoError(t, err)

	require.Len(t, result.Blockers, 1)
	b := result.Blockers[0]
	assert.Equal(t, closure.SeverityBlocking, b.Severity)
	assert.Equal(t, closure.BlockerTypeFinancial, b.Type)
	assert.Equal(t, w.ID.String(), b.ID)
	assert.Equal(t, "На балансе 1500 USD", b.Description)
}

func TestChecker_Check_NoBlockerCases(t *testing.T) {
	t.Run("zero balance", func(t *testing.T) {
		store := NewMemoryStore()
		orgID := id.OrganizationID(uuid.New())
		seedWallet(t, store, orgID, 0)

		result, err := NewChecker(store).Check(context.Background(), orgID)
		require.NoError(t, err)
		assert.Empty(t, result.Blockers)
	})

	t.Run("no wallet at all", func(t *testing.T) {
		result, err := NewChecker(NewMemoryStore()).Check(context.Background(), id.OrganizationID(uuid.New()))
		require.NoError(t, err)
		assert.Empty(t, result.Blockers)
		assert.Equal(t, ModuleName, result.ModuleName)
	})

	t.Run("negative balance does not block", func(t *testing.T) {
		store := NewMemoryStore()
		orgID := id.OrganizationID(uuid.New())
		seedWallet(t, store, orgID, -500)

		result, err := NewChecker(store).Check(context.Background(), orgID)
		require.NoError(t, err)
		assert.Empty(t, result.Blockers)
	})
}
