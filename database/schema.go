package database

import (
	"context"
	"log"
)

// schemaStatements holds the tables this service owns. The POS backend itself
// keeps the sales ledger; we only persist users, drawer sessions and forecast
// report snapshots.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS drawer_sessions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'open',
		opening_float NUMERIC(12,2) NOT NULL DEFAULT 0,
		expected_amount NUMERIC(12,2),
		counted_amount NUMERIC(12,2),
		over_short NUMERIC(12,2),
		notes TEXT,
		opened_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		closed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS drawer_movements (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_id UUID NOT NULL REFERENCES drawer_sessions(id),
		direction TEXT NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS forecast_snapshots (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		method TEXT NOT NULL,
		horizon INT NOT NULL,
		payload JSONB NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates the service's tables if they do not exist yet.
func EnsureSchema() {
	ctx := context.Background()
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed to ensure schema: %v\n", err)
		}
	}
	log.Println("Database schema ensured")
}
