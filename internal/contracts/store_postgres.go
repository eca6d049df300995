package contracts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
)

// PostgresStore persists contracts in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, c *Contract) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contracts (id, organization_id, title, amount_minor_units, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.OrganizationID.String(), c.Title, c.AmountMinorUnits, c.Currency, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByOrganizationAndStatuses(ctx context.Context, orgID id.OrganizationID, statuses []Status) ([]*Contract, error) {
	raw := make([]string, 0, len(statuses))
	for _, status := range statuses {
		raw = append(raw, string(status))
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_id, title, amount_minor_units, currency, status, created_at
		FROM contracts
		WHERE organization_id = $1 AND status = ANY($2)
		ORDER BY created_at`,
		orgID.String(), raw,
	)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	contracts := []*Contract{}
	for rows.Next() {
		var (
			c        Contract
			rawOrgID string
			status   string
		)
		if err := rows.Scan(&c.ID, &rawOrgID, &c.Title, &c.AmountMinorUnits, &c.Currency, &status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list contracts: %w", err)
		}
		parsed, err := id.ParseOrganizationID(rawOrgID)
		if err != nil {
			return nil, fmt.Errorf("list contracts: %w", err)
		}
		c.OrganizationID = parsed
		c.Status = Status(status)
		contracts = append(contracts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

func (s *PostgresStore) DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM contracts WHERE organization_id = $1`, orgID.String(),
	); err != nil {
		return fmt.Errorf("delete contracts: %w", err)
	}
	return nil
}
