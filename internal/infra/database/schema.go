package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id                  UUID PRIMARY KEY,
		user_id             UUID NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		age                 INTEGER NOT NULL CHECK (age > 0),
		business_type       TEXT NOT NULL,
		location            TEXT NOT NULL,
		email               TEXT NOT NULL,
		interested          BOOLEAN NOT NULL DEFAULT FALSE,
		notification_status TEXT NOT NULL DEFAULT 'SUBMITTED',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_user_id ON leads (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_pending ON leads (updated_at) WHERE notification_status = 'PENDING'`,
	`CREATE TABLE IF NOT EXISTS inbound_replies (
		id         UUID PRIMARY KEY,
		sender     TEXT NOT NULL,
		subject    TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL DEFAULT '',
		lead_id    UUID REFERENCES leads(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inbound_replies_created_at ON inbound_replies (created_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
