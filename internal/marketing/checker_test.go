package marketing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "workhive/pkg/domain"
)

func TestChecker_AlwaysEmpty(t *testing.T) {
	checker := NewChecker()
	orgID := id.OrganizationID(uuid.New())
	archiveID := id.ArchiveID(uuid.New())

	result, err := checker.Check(context.Background(), orgID)
	require.NoError(t, err)
	assert.Empty(t, result.Blockers)
	assert.Empty(t, result.ArchivableData)
	assert.Equal(t, ModuleID, result.ModuleID)

	require.NoError(t, checker.Archive(context.Background(), orgID, archiveID))
	require.NoError(t, checker.DeleteArchived(context.Background(), archiveID))
}
