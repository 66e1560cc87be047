package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rightmove_properties (
            id               TEXT PRIMARY KEY,
            transaction_type TEXT,
            property_type    TEXT,
            price            NUMERIC,
            bedrooms         SMALLINT,
            bathrooms        SMALLINT,
            lat              DOUBLE PRECISION,
            lon              DOUBLE PRECISION,
            distance_miles   DOUBLE PRECISION,
            record           JSONB NOT NULL,
            created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_rightmove_properties_price ON rightmove_properties(price);`,
		`CREATE INDEX IF NOT EXISTS idx_rightmove_properties_type ON rightmove_properties(transaction_type);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// PropertyRow is one canonical record flattened for storage: a few
// queryable scalar columns plus the full record as a JSONB snapshot.
type PropertyRow struct {
	ID            string
	Type          sql.NullString
	PropertyType  sql.NullString
	Price         sql.NullFloat64
	Bedrooms      sql.NullInt64
	Bathrooms     sql.NullInt64
	Lat           sql.NullFloat64
	Lon           sql.NullFloat64
	DistanceMiles sql.NullFloat64
	RecordJSON    []byte
}

// UpsertProperties writes a batch in one transaction, keyed by the
// platform identifier.
func (s *Store) UpsertProperties(ctx context.Context, rows []PropertyRow) error {
	if s.DB == nil {
		return errors.New("nil db")
	}
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, row := range rows {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO rightmove_properties
                (id, transaction_type, property_type, price, bedrooms, bathrooms, lat, lon, distance_miles, record)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
            ON CONFLICT (id)
            DO UPDATE SET transaction_type=EXCLUDED.transaction_type, property_type=EXCLUDED.property_type,
                price=EXCLUDED.price, bedrooms=EXCLUDED.bedrooms, bathrooms=EXCLUDED.bathrooms,
                lat=EXCLUDED.lat, lon=EXCLUDED.lon, distance_miles=EXCLUDED.distance_miles,
                record=EXCLUDED.record, updated_at=now()`,
			row.ID, row.Type, row.PropertyType, row.Price, row.Bedrooms, row.Bathrooms,
			row.Lat, row.Lon, row.DistanceMiles, string(row.RecordJSON),
		); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}
