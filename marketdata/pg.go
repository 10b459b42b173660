package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"github.com/meenmo/curvelib/quote"
)

// PGStore reads curve observables from Postgres.
//
// Expected schema:
//
//	curve_jumps(curve_id text, jump_date date, jump_value double precision)
//	curve_rates(curve_id text, rate double precision)
type PGStore struct {
	db *sql.DB
}

// OpenPG connects to Postgres with a lib/pq DSN and verifies the connection.
func OpenPG(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("marketdata: ping postgres: %w", err)
	}
	return &PGStore{db: db}, nil
}

// NewPGStore wraps an existing connection pool, e.g. one shared with other
// market data readers.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

// Close releases the underlying pool.
func (s *PGStore) Close() error {
	return s.db.Close()
}

// LoadJumps returns the jump quotes and anchor dates for a curve, ordered by
// date, ready to pass to termstructure.WithJumps.
func (s *PGStore) LoadJumps(ctx context.Context, curveID string) ([]quote.Quote, []time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT jump_date, jump_value FROM curve_jumps WHERE curve_id = $1 ORDER BY jump_date`,
		curveID)
	if err != nil {
		return nil, nil, fmt.Errorf("marketdata: load jumps for %s: %w", curveID, err)
	}
	defer rows.Close()

	var (
		quotes []quote.Quote
		dates  []time.Time
	)
	for rows.Next() {
		var (
			d time.Time
			v float64
		)
		if err := rows.Scan(&d, &v); err != nil {
			return nil, nil, fmt.Errorf("marketdata: scan jump for %s: %w", curveID, err)
		}
		quotes = append(quotes, quote.NewSimpleQuote(v))
		dates = append(dates, d.UTC().Truncate(24*time.Hour))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("marketdata: iterate jumps for %s: %w", curveID, err)
	}
	return quotes, dates, nil
}

// LoadFlatRate returns the flat curve rate for a curve.
func (s *PGStore) LoadFlatRate(ctx context.Context, curveID string) (float64, error) {
	var rate float64
	err := s.db.QueryRowContext(ctx,
		`SELECT rate FROM curve_rates WHERE curve_id = $1`, curveID).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("marketdata: no rate for curve %s", curveID)
	}
	if err != nil {
		return 0, fmt.Errorf("marketdata: load rate for %s: %w", curveID, err)
	}
	return rate, nil
}
