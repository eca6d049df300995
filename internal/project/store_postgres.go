package project

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
)

// PostgresStore persists projects and tasks in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *Project) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO projects (id, organization_id, name, created_at)
		VALUES ($1, $2, $3, $4)`,
		p.ID.String(), p.OrganizationID.String(), p.Name, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateTask(ctx context.Context, t *Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, project_id, title, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.ProjectID.String(), t.Title, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*Project, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, name, created_at
		FROM projects WHERE organization_id = $1
		ORDER BY created_at`,
		orgID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *PostgresStore) CountProjects(ctx context.Context, orgID id.OrganizationID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE organization_id = $1`,
		orgID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountTasks(ctx context.Context, orgID id.OrganizationID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.organization_id = $1`,
		orgID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error {
	if _, err := s.pool.Exec(ctx, `
		DELETE FROM tasks WHERE project_id IN
		(SELECT id FROM projects WHERE organization_id = $1)`,
		orgID.String(),
	); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM projects WHERE organization_id = $1`, orgID.String(),
	); err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (*Project, error) {
	var (
		p        Project
		rawID    string
		rawOrgID string
	)
	if err := row.Scan(&rawID, &rawOrgID, &p.Name, &p.CreatedAt); err != nil {
		return nil, err
	}
	projectID, err := id.ParseProjectID(rawID)
	if err != nil {
		return nil, err
	}
	orgID, err := id.ParseOrganizationID(rawOrgID)
	if err != nil {
		return nil, err
	}
	p.ID = projectID
	p.OrganizationID = orgID
	return &p, nil
}
