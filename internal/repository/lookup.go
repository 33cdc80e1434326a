package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athscan/athscan-backend/internal/models"
)

type LookupRepo struct {
	pool *pgxpool.Pool
}

func NewLookupRepo(pool *pgxpool.Pool) *LookupRepo {
	return &LookupRepo{pool: pool}
}

// Record persists a completed lookup and returns the stored row.
func (r *LookupRepo) Record(ctx context.Context, l *models.Lookup) (*models.Lookup, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO lookups
		   (contract_address, coin_id, name, symbol, ath_price_usd, ath_date,
		    historical_price_usd, historical_date, return_percent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING *`,
		l.ContractAddress, l.CoinID, l.Name, l.Symbol, l.ATHPriceUSD, l.ATHDate,
		l.HistoricalPriceUSD, l.HistoricalDate, l.ReturnPercent,
	)
	return scanLookup(row)
}

func (r *LookupRepo) GetRecent(ctx context.Context, limit int) ([]models.Lookup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM lookups ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLookups(rows)
}

func (r *LookupRepo) GetByAddress(ctx context.Context, address string, limit int) ([]models.Lookup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM lookups WHERE contract_address = $1
		 ORDER BY created_at DESC LIMIT $2`, address, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLookups(rows)
}

// --- scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanLookup(row scannable) (*models.Lookup, error) {
	var l models.Lookup
	err := row.Scan(&l.ID, &l.ContractAddress, &l.CoinID, &l.Name, &l.Symbol,
		&l.ATHPriceUSD, &l.ATHDate, &l.HistoricalPriceUSD, &l.HistoricalDate,
		&l.ReturnPercent, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type rowsIter interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectLookups(rows rowsIter) ([]models.Lookup, error) {
	var out []models.Lookup
	for rows.Next() {
		var l models.Lookup
		if err := rows.Scan(&l.ID, &l.ContractAddress, &l.CoinID, &l.Name, &l.Symbol,
			&l.ATHPriceUSD, &l.ATHDate, &l.HistoricalPriceUSD, &l.HistoricalDate,
			&l.ReturnPercent, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
