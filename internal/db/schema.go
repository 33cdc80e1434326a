package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const lookupsSchema = `
CREATE TABLE IF NOT EXISTS lookups (
	id                   BIGSERIAL PRIMARY KEY,
	contract_address     TEXT NOT NULL,
	coin_id              TEXT NOT NULL,
	name                 TEXT NOT NULL,
	symbol               TEXT NOT NULL,
	ath_price_usd        DOUBLE PRECISION NOT NULL,
	ath_date             TIMESTAMPTZ NOT NULL,
	historical_price_usd DOUBLE PRECISION,
	historical_date      TIMESTAMPTZ,
	return_percent       DOUBLE PRECISION,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS lookups_contract_address_idx ON lookups (contract_address);
`

// EnsureSchema creates the lookups table on first run.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, lookupsSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
