package organization

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

type OrganizationStoreSuite struct {
	suite.Suite
	store    *MemoryStore
	archives *MemoryArchiveStore
	ctx      context.Context
}

func (s *OrganizationStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.archives = NewMemoryArchiveStore()
	s.ctx = context.Background()
}

func TestOrganizationStoreSuite(t *testing.T) {
	suite.Run(t, new(OrganizationStoreSuite))
}

func (s *OrganizationStoreSuite) newOrganization(name string) *Organization {
	return &Organization{
		ID:        id.OrganizationID(uuid.New()),
		Name:      name,
		Status:    StatusActive,
		CreatedBy: id.UserID(uuid.New()),
		CreatedAt: time.Now(),
	}
}

func (s *OrganizationStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds organization by ID", func() {
		org := s.newOrganization("Acme")
		s.Require().NoError(s.store.Create(s.ctx, org))

		found, err := s.store.GetByID(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Equal(org.Name, found.Name)
		s.Equal(StatusActive, found.Status)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.GetByID(s.ctx, id.OrganizationID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		org := s.newOrganization("Dup")
		s.Require().NoError(s.store.Create(s.ctx, org))
		s.Require().ErrorIs(s.store.Create(s.ctx, org), sentinel.ErrConflict)
	})
}

func (s *OrganizationStoreSuite) TestMarkClosed() {
	s.Run("transitions to closed with timestamp", func() {
		org := s.newOrganization("Closing")
		s.Require().NoError(s.store.Create(s.ctx, org))

		closedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		s.Require().NoError(s.store.MarkClosed(s.ctx, org.ID, closedAt))

		found, err := s.store.GetByID(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Equal(StatusClosed, found.Status)
		s.Require().NotNil(found.ClosedAt)
		s.Equal(closedAt, *found.ClosedAt)
	})

	s.Run("returns ErrNotFound for unknown organization", func() {
		err := s.store.MarkClosed(s.ctx, id.OrganizationID(uuid.New()), time.Now())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *OrganizationStoreSuite) TestAssociations() {
	org := s.newOrganization("Team")
	s.Require().NoError(s.store.Create(s.ctx, org))

	for range 3 {
		s.Require().NoError(s.store.AddMember(s.ctx, Member{
			OrganizationID: org.ID,
			UserID:         id.UserID(uuid.New()),
			Role:           "member",
			JoinedAt:       time.Now(),
		}))
	}
	s.Require().NoError(s.store.AddInvite(s.ctx, Invite{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Email:          "new@example.com",
		CreatedAt:      time.Now(),
	}))

	s.Run("counts members and invites", func() {
		members, err := s.store.CountMembers(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Equal(3, members)

		invites, err := s.store.CountInvites(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Equal(1, invites)
	})

	s.Run("deletes associations", func() {
		s.Require().NoError(s.store.DeleteAssociations(s.ctx, org.ID))

		members, err := s.store.CountMembers(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Zero(members)

		invites, err := s.store.CountInvites(s.ctx, org.ID)
		s.Require().NoError(err)
		s.Zero(invites)
	})
}

func (s *OrganizationStoreSuite) TestArchives() {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	newArchive := func(expiresAt time.Time) *Archive {
		return &Archive{
			ID:               id.ArchiveID(uuid.New()),
			OrganizationID:   id.OrganizationID(uuid.New()),
			OrganizationName: "Gone",
			ClosedBy:         id.UserID(uuid.New()),
			CreatedAt:        now.AddDate(0, 0, -30),
			ExpiresAt:        expiresAt,
		}
	}

	s.Run("creates and finds archive", func() {
		archive := newArchive(now.AddDate(0, 0, 30))
		s.Require().NoError(s.archives.Create(s.ctx, archive))

		found, err := s.archives.GetByID(s.ctx, archive.ID)
		s.Require().NoError(err)
		s.Equal(archive.OrganizationID, found.OrganizationID)
		s.Equal(archive.ExpiresAt, found.ExpiresAt)
	})

	s.Run("lists only expired archives", func() {
		expired := newArchive(now.Add(-time.Hour))
		boundary := newArchive(now)
		live := newArchive(now.Add(time.Hour))
		s.Require().NoError(s.archives.Create(s.ctx, expired))
		s.Require().NoError(s.archives.Create(s.ctx, boundary))
		s.Require().NoError(s.archives.Create(s.ctx, live))

		listed, err := s.archives.ListExpired(s.ctx, now)
		s.Require().NoError(err)

		ids := map[id.ArchiveID]bool{}
		for _, a := range listed {
			ids[a.ID] = true
		}
		s.True(ids[expired.ID])
		s.True(ids[boundary.ID], "expiresAt == now counts as expired")
		s.False(ids[live.ID])
	})

	s.Run("delete is idempotent", func() {
		archive := newArchive(now)
		s.Require().NoError(s.archives.Create(s.ctx, archive))
		s.Require().NoError(s.archives.Delete(s.ctx, archive.ID))
		s.Require().NoError(s.archives.Delete(s.ctx, archive.ID))

		_, err := s.archives.GetByID(s.ctx, archive.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
