package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// PostgresStore persists organizations in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, org *Organization) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organizations (id, name, status, created_by, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID.String(), org.Name, string(org.Status), org.CreatedBy.String(), org.CreatedAt, org.ClosedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, orgID id.OrganizationID) (*Organization, error) {
	var (
		org      Organization
		rawID    string
		rawBy    string
		status   string
		closedAt *time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, status, created_by, created_at, closed_at
		FROM organizations WHERE id = $1`,
		orgID.String(),
	).Scan(&rawID, &org.Name, &status, &rawBy, &org.CreatedAt, &closedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	parsedID, err := id.ParseOrganizationID(rawID)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	createdBy, err := id.ParseUserID(rawBy)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	org.ID = parsedID
	org.CreatedBy = createdBy
	org.Status = Status(status)
	org.ClosedAt = closedAt
	return &org, nil
}

func (s *PostgresStore) MarkClosed(ctx context.Context, orgID id.OrganizationID, closedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE organizations SET status = $2, closed_at = $3 WHERE id = $1`,
		orgID.String(), string(StatusClosed), closedAt,
	)
	if err != nil {
		return fmt.Errorf("mark organization closed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddMember(ctx context.Context, member Member) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organization_members (organization_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)`,
		member.OrganizationID.String(), member.UserID.String(), member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddInvite(ctx context.Context, invite Invite) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organization_invites (id, organization_id, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		invite.ID, invite.OrganizationID.String(), invite.Email, invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add invite: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountMembers(ctx context.Context, orgID id.OrganizationID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM organization_members WHERE organization_id = $1`,
		orgID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountInvites(ctx context.Context, orgID id.OrganizationID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM organization_invites WHERE organization_id = $1`,
		orgID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invites: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteAssociations(ctx context.Context, orgID id.OrganizationID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM organization_members WHERE organization_id = $1`, orgID.String(),
	); err != nil {
		return fmt.Errorf("delete members: %w", err)
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM organization_invites WHERE organization_id = $1`, orgID.String(),
	); err != nil {
		return fmt.Errorf("delete invites: %w", err)
	}
	return nil
}

// PostgresArchiveStore persists closure archive records in PostgreSQL.
type PostgresArchiveStore struct {
	pool *pgxpool.Pool
}

func NewPostgresArchiveStore(pool *pgxpool.Pool) *PostgresArchiveStore {
	return &PostgresArchiveStore{pool: pool}
}

func (s *PostgresArchiveStore) Create(ctx context.Context, archive *Archive) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organization_archives (id, organization_id, organization_name, closed_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		archive.ID.String(), archive.OrganizationID.String(), archive.OrganizationName,
		archive.ClosedBy.String(), archive.CreatedAt, archive.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create archive: %w", err)
	}
	return nil
}

func (s *PostgresArchiveStore) GetByID(ctx context.Context, archiveID id.ArchiveID) (*Archive, error) {
	archive, err := scanArchive(s.pool.QueryRow(ctx, `
		SELECT id, organization_id, organization_name, closed_by, created_at, expires_at
		FROM organization_archives WHERE id = $1`,
		archiveID.String(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get archive: %w", err)
	}
	return archive, nil
}

func (s *PostgresArchiveStore) ListExpired(ctx context.Context, asOf time.Time) ([]*Archive, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, organization_name, closed_by, created_at, expires_at
		FROM organization_archives WHERE expires_at <= $1
		ORDER BY expires_at`,
		asOf,
	)
	if err != nil {
		return nil, fmt.Errorf("list expired archives: %w", err)
	}
	defer rows.Close()

	archives := []*Archive{}
	for rows.Next() {
		archive, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("list expired archives: %w", err)
		}
		archives = append(archives, archive)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expired archives: %w", err)
	}
	return archives, nil
}

func (s *PostgresArchiveStore) Delete(ctx context.Context, archiveID id.ArchiveID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM organization_archives WHERE id = $1`, archiveID.String(),
	); err != nil {
		return fmt.Errorf("delete archive: %w", err)
	}
	return nil
}

func scanArchive(row pgx.Row) (*Archive, error) {
	var (
		archive  Archive
		rawID    string
		rawOrgID string
		rawBy    string
	)
	if err := row.Scan(&rawID, &rawOrgID, &archive.OrganizationName, &rawBy, &archive.CreatedAt, &archive.ExpiresAt); err != nil {
		return nil, err
	}
	archiveID, err := id.ParseArchiveID(rawID)
	if err != nil {
		return nil, err
	}
	orgID, err := id.ParseOrganizationID(rawOrgID)
	if err != nil {
		return nil, err
	}
	closedBy, err := id.ParseUserID(rawBy)
	if err != nil {
		return nil, err
	}
	archive.ID = archiveID
	archive.OrganizationID = orgID
	archive.ClosedBy = closedBy
	return &archive, nil
}
