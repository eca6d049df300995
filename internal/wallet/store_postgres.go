package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	id "workhive/pkg/domain"
	"workhive/pkg/platform/sentinel"
)

// PostgresStore persists wallets in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, w *Wallet) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO wallets (id, organization_id, balance_minor_units, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id) DO UPDATE
		SET balance_minor_units = EXCLUDED.balance_minor_units,
		    currency = EXCLUDED.currency,
		    updated_at = EXCLUDED.updated_at`,
		w.ID, w.OrganizationID.String(), w.BalanceMinorUnits, w.Currency, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByOrganization(ctx context.Context, orgID id.OrganizationID) (*Wallet, error) {
	var (
		w        Wallet
		rawOrgID string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, organization_id, balance_minor_units, currency, updated_at
		FROM wallets WHERE organization_id = $1`,
		orgID.String(),
	).Scan(&w.ID, &rawOrgID, &w.BalanceMinorUnits, &w.Currency, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	parsed, err := id.ParseOrganizationID(rawOrgID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	w.OrganizationID = parsed
	return &w, nil
}

func (s *PostgresStore) DeleteByOrganization(ctx context.Context, orgID id.OrganizationID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM wallets WHERE organization_id = $1`, orgID.String(),
	); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}
