package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pv/soil-sensor-go/internal/archive"
)

type Config struct {
	ConnString string
	MaxConns   int32
}

type Store struct {
	pool *pgxpool.Pool
}

// New открывает пул соединений и готовит схему архива.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ConnString == "" {
		return nil, fmt.Errorf("postgres: connection string is empty")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	store := &Store{pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{vwcSchemaSQL, fluxSchemaSQL} {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveVWCRun(ctx context.Context, run archive.VWCRun) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range run.Records {
		var temp *float64
		if !math.IsNaN(rec.TempC) {
			t := rec.TempC
			temp = &t
		}
		_, err := tx.Exec(ctx, insertVWCSQL,
			run.RunID, run.Source, run.SoilType, run.SavedAt.UTC(),
			rec.Time, rec.Raw, temp, rec.VWC,
		)
		if err != nil {
			return fmt.Errorf("postgres: insert vwc row: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit vwc run: %w", err)
	}
	return nil
}

func (s *Store) SaveFlux(ctx context.Context, rec archive.FluxRecord) error {
	_, err := s.pool.Exec(ctx, insertFluxSQL,
		rec.RunID, rec.Collar, rec.Replicate, rec.SavedAt.UTC(),
		rec.Result.FluxCO2, rec.Result.FluxCH4, rec.Result.FluxH2O,
		rec.Result.R2CO2, rec.Result.R2CH4, rec.Result.R2H2O,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert flux row: %w", err)
	}
	return nil
}

const vwcSchemaSQL = `
CREATE TABLE IF NOT EXISTS vwc_history (
	run_id    UUID NOT NULL,
	source    TEXT,
	soil_type TEXT NOT NULL,
	saved_at  TIMESTAMPTZ NOT NULL,
	ts        TIMESTAMP NOT NULL,
	raw       DOUBLE PRECISION NOT NULL,
	temp      DOUBLE PRECISION,
	vwc       DOUBLE PRECISION NOT NULL
);
`

const fluxSchemaSQL = `
CREATE TABLE IF NOT EXISTS flux_history (
	run_id    UUID NOT NULL,
	collar    TEXT,
	replicate TEXT,
	saved_at  TIMESTAMPTZ NOT NULL,
	flux_co2  DOUBLE PRECISION NOT NULL,
	flux_ch4  DOUBLE PRECISION NOT NULL,
	flux_h2o  DOUBLE PRECISION NOT NULL,
	r2_co2    DOUBLE PRECISION NOT NULL,
	r2_ch4    DOUBLE PRECISION NOT NULL,
	r2_h2o    DOUBLE PRECISION NOT NULL
);
`

const insertVWCSQL = `
INSERT INTO vwc_history(run_id, source, soil_type, saved_at, ts, raw, temp, vwc)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

const insertFluxSQL = `
INSERT INTO flux_history(run_id, collar, replicate, saved_at, flux_co2, flux_ch4, flux_h2o, r2_co2, r2_ch4, r2_h2o)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`
