//go:build integration

package organization_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"workhive/internal/organization"
	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
	"workhive/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg       *containers.PostgresContainer
	store    *organization.PostgresStore
	archives *organization.PostgresArchiveStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = organization.NewPostgresStore(s.pg.Pool)
	s.archives = organization.NewPostgresArchiveStore(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.T().Context(),
		"organizations", "organization_archives"))
}

func (s *PostgresStoreSuite) newOrg(name string) *organization.Organization {
	return &organization.Organization{
		ID:        id.OrganizationID(uuid.New()),
		Name:      name,
		Status:    organization.StatusActive,
		CreatedBy: id.UserID(uuid.New()),
		CreatedAt: time.Now().UTC(),
	}
}

func (s *PostgresStoreSuite) TestCreateAndGet() {
	ctx := s.T().Context()
	org := s.newOrg("Acme")
	s.Require().NoError(s.store.Create(ctx, org))

	got, err := s.store.GetByID(ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(org.ID, got.ID)
	s.Equal("Acme", got.Name)
	s.Equal(organization.StatusActive, got.Status)
	s.Nil(got.ClosedAt)
	s.WithinDuration(org.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *PostgresStoreSuite) TestCreateDuplicateConflicts() {
	ctx := s.T().Context()
	org := s.newOrg("Acme")
	s.Require().NoError(s.store.Create(ctx, org))
	s.ErrorIs(s.store.Create(ctx, org), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestGetMissing() {
	_, err := s.store.GetByID(s.T().Context(), id.OrganizationID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestMarkClosed() {
	ctx := s.T().Context()
	org := s.newOrg("Acme")
	s.Require().NoError(s.store.Create(ctx, org))

	closedAt := time.Now().UTC()
	s.Require().NoError(s.store.MarkClosed(ctx, org.ID, closedAt))

	got, err := s.store.GetByID(ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(organization.StatusClosed, got.Status)
	s.Require().NotNil(got.ClosedAt)
	s.WithinDuration(closedAt, *got.ClosedAt, time.Millisecond)

	s.ErrorIs(s.store.MarkClosed(ctx, id.OrganizationID(uuid.New()), closedAt), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAssociations() {
	ctx := s.T().Context()
	org := s.newOrg("Acme")
	s.Require().NoError(s.store.Create(ctx, org))

	s.Require().NoError(s.store.AddMember(ctx, organization.Member{
		OrganizationID: org.ID, UserID: id.UserID(uuid.New()),
		Role: "owner", JoinedAt: time.Now().UTC(),
	}))
	s.Require().NoError(s.store.AddMember(ctx, organization.Member{
		OrganizationID: org.ID, UserID: id.UserID(uuid.New()),
		Role: "member", JoinedAt: time.Now().UTC(),
	}))
	s.Require().NoError(s.store.AddInvite(ctx, organization.Invite{
		ID: uuid.New(), OrganizationID: org.ID,
		Email: "new@example.com", CreatedAt: time.Now().UTC(),
	}))

	members, err := s.store.CountMembers(ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(2, members)

	invites, err := s.store.CountInvites(ctx, org.ID)
	s.Require().NoError(err)
	s.Equal(1, invites)

	s.Require().NoError(s.store.DeleteAssociations(ctx, org.ID))

	members, err = s.store.CountMembers(ctx, org.ID)
	s.Require().NoError(err)
	s.Zero(members)

	invites, err = s.store.CountInvites(ctx, org.ID)
	s.Require().NoError(err)
	s.Zero(invites)
}

func (s *PostgresStoreSuite) TestArchiveLifecycle() {
	ctx := s.T().Context()
	now := time.Now().UTC()

	expired := &organization.Archive{
		ID:               id.ArchiveID(uuid.New()),
		OrganizationID:   id.OrganizationID(uuid.New()),
		OrganizationName: "Old Co",
		ClosedBy:         id.UserID(uuid.New()),
		CreatedAt:        now.Add(-31 * 24 * time.Hour),
		ExpiresAt:        now.Add(-24 * time.Hour),
	}
	fresh := &organization.Archive{
		ID:               id.ArchiveID(uuid.New()),
		OrganizationID:   id.OrganizationID(uuid.New()),
		OrganizationName: "New Co",
		ClosedBy:         id.UserID(uuid.New()),
		CreatedAt:        now,
		ExpiresAt:        now.Add(30 * 24 * time.Hour),
	}
	s.Require().NoError(s.archives.Create(ctx, expired))
	s.Require().NoError(s.archives.Create(ctx, fresh))

	got, err := s.archives.GetByID(ctx, fresh.ID)
	s.Require().NoError(err)
	s.Equal("New Co", got.OrganizationName)

	list, err := s.archives.ListExpired(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(expired.ID, list[0].ID)

	s.Require().NoError(s.archives.Delete(ctx, expired.ID))
	// deleting again is a no-op
	s.Require().NoError(s.archives.Delete(ctx, expired.ID))

	_, err = s.archives.GetByID(ctx, expired.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
