package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workhive/internal/audit"
	"workhive/internal/closure"
	"workhive/internal/contracts"
	"workhive/internal/documents"
	"workhive/internal/expenses"
	"workhive/internal/marketing"
	"workhive/internal/organization"
	"workhive/internal/project"
	"workhive/internal/wallet"
	id "workhive/pkg/domain"
	dErrors "workhive/pkg/domain-errors"
	"workhive/pkg/requestcontext"
)

// fixture wires the service to real memory stores and real checkers, the way
// cmd/server does against postgres.
type fixture struct {
	svc        *Service
	orgs       *organization.MemoryStore
	orgArchive *organization.MemoryArchiveStore
	projects   *project.MemoryStore
	contracts  *contracts.MemoryStore
	expenses   *expenses.MemoryStore
	wallets    *wallet.MemoryStore
	docs       *documents.MemoryStore
	docArchive *documents.MemoryArchiveStore
	auditStore *audit.MemoryStore
	org        *organization.Organization
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		orgs:       organization.NewMemoryStore(),
		orgArchive: organization.NewMemoryArchiveStore(),
		projects:   project.NewMemoryStore(),
		contracts:  contracts.NewMemoryStore(),
		expenses:   expenses.NewMemoryStore(),
		wallets:    wallet.NewMemoryStore(),
		docs:       documents.NewMemoryStore(),
		docArchive: documents.NewMemoryArchiveStore(),
		auditStore: audit.NewMemoryStore(),
	}

	registry := closure.NewRegistry(closure.WithLogger(logger))
	registry.Register(contracts.NewChecker(f.contracts))
	registry.Register(expenses.NewChecker(f.expenses, f.projects))
	registry.Register(wallet.NewChecker(f.wallets))
	registry.Register(documents.NewChecker(f.docs, f.docArchive, f.projects, f.orgArchive))
	registry.Register(marketing.NewChecker())

	impact := NewImpactCounter(f.orgs, f.projects, f.docs, f.expenses)
	purgers := []LivePurger{
		expenses.NewPurger(f.expenses, f.projects),
		documents.NewPurger(f.docs, f.projects),
		project.NewPurger(f.projects),
		wallet.NewPurger(f.wallets),
		contracts.NewPurger(f.contracts),
		organization.NewPurger(f.orgs),
	}

	opts = append([]Option{
		WithLogger(logger),
		WithAuditPublisher(audit.NewPublisher(f.auditStore)),
	}, opts...)
	f.svc = New(registry, f.orgs, f.orgArchive, impact, purgers, opts...)

	f.org = &organization.Organization{
		ID:        id.OrganizationID(uuid.New()),
		Name:      "Acme",
		Status:    organization.StatusActive,
		CreatedBy: id.UserID(uuid.New()),
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.orgs.Create(context.Background(), f.org))
	return f
}

func (f *fixture) addContract(t *testing.T, status contracts.Status, amount int64, currency string) {
	t.Helper()
	require.NoError(t, f.contracts.Create(context.Background(), &contracts.Contract{
		ID:               uuid.New(),
		OrganizationID:   f.org.ID,
		Title:            "Разработка",
		AmountMinorUnits: amount,
		Currency:         currency,
		Status:           status,
		CreatedAt:        time.Now(),
	}))
}

func (f *fixture) addProjectWithDocuments(t *testing.T, docCount int) *project.Project {
	t.Helper()
	p := &project.Project{
		ID:             id.ProjectID(uuid.New()),
		OrganizationID: f.org.ID,
		Name:           "Проект",
		CreatedAt:      time.Now(),
	}
	require.NoError(t, f.projects.CreateProject(context.Background(), p))
	for range docCount {
		d := &documents.Document{ID: uuid.New(), ProjectID: p.ID, Title: "Документ", CreatedAt: time.Now()}
		require.NoError(t, f.docs.CreateDocument(context.Background(), d))
		fileID := uuid.New()
		require.NoError(t, f.docs.CreateFile(context.Background(), &documents.File{
			ID: fileID, URL: "https://files.example.com/" + fileID.String(), SizeBytes: 1024, CreatedAt: time.Now(),
		}))
		require.NoError(t, f.docs.CreateVersion(context.Background(), &documents.Version{
			ID: uuid.New(), DocumentID: d.ID, Number: 1, FileID: fileID, CreatedAt: time.Now(),
		}))
	}
	return p
}

func TestService_Preview_BlockedByFundedContract(t *testing.T) {
	f := newFixture(t)
	f.addContract(t, contracts.StatusFunded, 150000, "USD")

	preview, err := f.svc.Preview(context.Background(), f.org.ID)
	require.NoError(t, err)

	assert.False(t, preview.CanClose)
	require.Len(t, preview.Blockers, 1)
	assert.Equal(t, "Контракт на 1500 USD (статус: funded)", preview.Blockers[0].Description)
	assert.Empty(t, preview.Warnings)
}

func TestService_Preview_CleanAfterSettlement(t *testing.T) {
	f := newFixture(t)
	f.addContract(t, contracts.StatusPaid, 150000, "USD")
	require.NoError(t, f.wallets.Save(context.Background(), &wallet.Wallet{
		ID: uuid.New(), OrganizationID: f.org.ID, BalanceMinorUnits: 0, Currency: "USD", UpdatedAt: time.Now(),
	}))

	preview, err := f.svc.Preview(context.Background(), f.org.ID)
	require.NoError(t, err)

	assert.True(t, preview.CanClose)
	assert.Empty(t, preview.Blockers)
}

func TestService_Preview_ReportsImpactAndArchivable(t *testing.T) {
	f := newFixture(t)
	p := f.addProjectWithDocuments(t, 2)
	require.NoError(t, f.projects.CreateTask(context.Background(), &project.Task{
		ID: uuid.New(), ProjectID: p.ID, Title: "Задача", Status: "open", CreatedAt: time.Now(),
	}))
	require.NoError(t, f.orgs.AddMember(context.Background(), organization.Member{
		OrganizationID: f.org.ID, UserID: id.UserID(uuid.New()), Role: "owner", JoinedAt: time.Now(),
	}))
	require.NoError(t, f.expenses.Create(context.Background(), &expenses.Expense{
		ID: uuid.New(), ProjectID: p.ID, Title: "Хостинг", AmountMinorUnits: 500,
		Currency: "USD", Status: expenses.StatusPaid, CreatedAt: time.Now(),
	}))

	preview, err := f.svc.Preview(context.Background(), f.org.ID)
	require.NoError(t, err)

	assert.True(t, preview.CanClose)
	assert.Len(t, preview.ArchivableData, 2)
	assert.Equal(t, closure.Impact{
		Projects:  1,
		Tasks:     1,
		Members:   1,
		Invites:   0,
		Documents: 2,
		Expenses:  1,
	}, preview.Impact)
}

func TestService_Preview_OrganizationNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Preview(context.Background(), id.OrganizationID(uuid.New()))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestService_Initiate_RefusesOnFreshBlockers(t *testing.T) {
	f := newFixture(t)

	preview, err := f.svc.Preview(context.Background(), f.org.ID)
	require.NoError(t, err)
	require.True(t, preview.CanClose)

	// a blocker appears after the preview; Initiate must re-check
	f.addContract(t, contracts.StatusDisputed, 9900, "EUR")

	result, err := f.svc.Initiate(context.Background(), f.org.ID, f.org.Name)
	require.NoError(t, err)

	assert.False(t, result.CanClose)
	require.Len(t, result.Blockers, 1)
	assert.Nil(t, result.Archive)

	org, err := f.orgs.GetByID(context.Background(), f.org.ID)
	require.NoError(t, err)
	assert.True(t, org.IsActive())

	events, err := f.auditStore.ListByOrganization(context.Background(), f.org.ID.String())
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, audit.ActionClosureRefused, events[len(events)-1].Action)
}

func TestService_Initiate_NameConfirmationMismatch(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Initiate(context.Background(), f.org.ID, "acme")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestService_Initiate_ClosesArchivesAndPurges(t *testing.T) {
	f := newFixture(t)
	p := f.addProjectWithDocuments(t, 2)
	require.NoError(t, f.orgs.AddMember(context.Background(), organization.Member{
		OrganizationID: f.org.ID, UserID: id.UserID(uuid.New()), Role: "owner", JoinedAt: time.Now(),
	}))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	actor := uuid.NewString()
	ctx := requestcontext.WithUserID(requestcontext.WithTime(context.Background(), now), actor)

	result, err := f.svc.Initiate(ctx, f.org.ID, f.org.Name)
	require.NoError(t, err)
	require.True(t, result.CanClose)
	require.NotNil(t, result.Archive)

	assert.Equal(t, now.Add(30*24*time.Hour), result.Archive.ExpiresAt)
	assert.Equal(t, actor, result.Archive.ClosedBy.String())

	org, err := f.orgs.GetByID(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Equal(t, organization.StatusClosed, org.Status)
	require.NotNil(t, org.ClosedAt)
	assert.Equal(t, now, *org.ClosedAt)

	snapshots, err := f.docArchive.ListByArchive(ctx, result.Archive.ID)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	for _, snapshot := range snapshots {
		assert.Equal(t, result.Archive.ExpiresAt, snapshot.ExpiresAt)
	}

	// live data is gone
	projectsLeft, err := f.projects.CountProjects(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Zero(t, projectsLeft)
	docsLeft, err := f.docs.CountByProjects(ctx, []id.ProjectID{p.ID})
	require.NoError(t, err)
	assert.Zero(t, docsLeft)
	members, err := f.orgs.CountMembers(ctx, f.org.ID)
	require.NoError(t, err)
	assert.Zero(t, members)

	// closing twice is a conflict
	_, err = f.svc.Initiate(ctx, f.org.ID, f.org.Name)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestService_PurgeExpired(t *testing.T) {
	f := newFixture(t)
	f.addProjectWithDocuments(t, 1)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	result, err := f.svc.Initiate(ctx, f.org.ID, f.org.Name)
	require.NoError(t, err)
	require.True(t, result.CanClose)

	t.Run("nothing expired yet", func(t *testing.T) {
		purged, err := f.svc.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, purged)
	})

	t.Run("purges after the retention window", func(t *testing.T) {
		later := requestcontext.WithTime(context.Background(), now.Add(31*24*time.Hour))

		purged, err := f.svc.PurgeExpired(later)
		require.NoError(t, err)
		assert.Equal(t, 1, purged)

		snapshots, err := f.docArchive.ListByArchive(context.Background(), result.Archive.ID)
		require.NoError(t, err)
		assert.Empty(t, snapshots)

		remaining, err := f.orgArchive.ListExpired(context.Background(), now.Add(365*24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("second sweep is a no-op", func(t *testing.T) {
		later := requestcontext.WithTime(context.Background(), now.Add(31*24*time.Hour))
		purged, err := f.svc.PurgeExpired(later)
		require.NoError(t, err)
		assert.Zero(t, purged)
	})
}

func TestService_CustomRetention(t *testing.T) {
	f := newFixture(t, WithRetention(7*24*time.Hour))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	result, err := f.svc.Initiate(ctx, f.org.ID, f.org.Name)
	require.NoError(t, err)
	require.True(t, result.CanClose)
	assert.Equal(t, now.Add(7*24*time.Hour), result.Archive.ExpiresAt)
}
