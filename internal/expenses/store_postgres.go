package expenses

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
)

// PostgresStore persists expenses in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, e *Expense) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (id, project_id, title, amount_minor_units, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ProjectID.String(), e.Title, e.AmountMinorUnits, e.Currency, string(e.Status), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByProjectAndStatuses(ctx context.Context, projectID id.ProjectID, statuses []Status) ([]*Expense, error) {
	raw := make([]string, 0, len(statuses))
	for _, status := range statuses {
		raw = append(raw, string(status))
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, title, amount_minor_units, currency, status, created_at
		FROM expenses
		WHERE project_id = $1 AND status = ANY($2)
		ORDER BY created_at`,
		projectID.String(), raw,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := []*Expense{}
	for rows.Next() {
		var (
			e            Expense
			rawProjectID string
			status       string
		)
		if err := rows.Scan(&e.ID, &rawProjectID, &e.Title, &e.AmountMinorUnits, &e.Currency, &status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		parsed, err := id.ParseProjectID(rawProjectID)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		e.ProjectID = parsed
		e.Status = Status(status)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CountByProjects(ctx context.Context, projectIDs []id.ProjectID) (int, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM expenses WHERE project_id = ANY($1)`,
		projectIDStrings(projectIDs),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteByProjects(ctx context.Context, projectIDs []id.ProjectID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM expenses WHERE project_id = ANY($1)`,
		projectIDStrings(projectIDs),
	); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	return nil
}

func projectIDStrings(projectIDs []id.ProjectID) []string {
	raw := make([]string, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		raw = append(raw, projectID.String())
	}
	return raw
}
