package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool using the provided DSN.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the rental_applications table if needed. Having the
// migration in code keeps the stack self-contained so docker-compose can
// bootstrap everything.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS rental_applications (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	date_of_birth TEXT NOT NULL,
	ssn_last_four TEXT NOT NULL,
	property_type TEXT NOT NULL,
	bedrooms TEXT NOT NULL,
	max_rent NUMERIC,
	move_in_date TEXT NOT NULL,
	lease_term TEXT NOT NULL,
	pets TEXT,
	employer TEXT NOT NULL,
	position TEXT NOT NULL,
	monthly_income NUMERIC,
	employment_length TEXT NOT NULL,
	additional_income NUMERIC,
	previous_landlord TEXT,
	landlord_phone TEXT,
	reference1_name TEXT NOT NULL,
	reference1_phone TEXT NOT NULL,
	reference2_name TEXT,
	reference2_phone TEXT,
	id_document_url TEXT,
	income_proof_url TEXT,
	additional_docs_url TEXT,
	status TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rental_applications_status ON rental_applications(status);
CREATE INDEX IF NOT EXISTS idx_rental_applications_submitted_at ON rental_applications(submitted_at);`
	_, err := pool.Exec(ctx, stmt)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
