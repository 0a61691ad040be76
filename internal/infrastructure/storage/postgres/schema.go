package postgres

import (
	"context"
	"fmt"

	"allot/pkg/logger"
)

// schemaStatements creates all tables the application needs. Statements
// are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cat_tickets (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL UNIQUE,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS cat_distributors (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS cat_parties (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS doc_purchases (
		id UUID PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		date TIMESTAMPTZ NOT NULL,
		distributor_id UUID NOT NULL REFERENCES cat_distributors(id),
		invoice_no TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		total_qty BIGINT NOT NULL DEFAULT 0,
		total_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_purchase_lines (
		line_id UUID PRIMARY KEY,
		document_id UUID NOT NULL REFERENCES doc_purchases(id) ON DELETE CASCADE,
		line_no INTEGER NOT NULL,
		ticket_id UUID NOT NULL REFERENCES cat_tickets(id),
		series TEXT NOT NULL DEFAULT '',
		from_no BIGINT NOT NULL,
		to_no BIGINT NOT NULL,
		qty BIGINT NOT NULL,
		rate NUMERIC(15,2) NOT NULL,
		amount NUMERIC(15,2) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_purchase_lines_ticket
		ON doc_purchase_lines(ticket_id)`,

	`CREATE TABLE IF NOT EXISTS doc_sales (
		id UUID PRIMARY KEY,
		number TEXT NOT NULL UNIQUE,
		date TIMESTAMPTZ NOT NULL,
		party_id UUID NOT NULL REFERENCES cat_parties(id),
		invoice_no TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		total_qty BIGINT NOT NULL DEFAULT 0,
		total_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS doc_sale_lines (
		line_id UUID PRIMARY KEY,
		document_id UUID NOT NULL REFERENCES doc_sales(id) ON DELETE CASCADE,
		line_no INTEGER NOT NULL,
		ticket_id UUID NOT NULL REFERENCES cat_tickets(id),
		series TEXT NOT NULL DEFAULT '',
		from_no BIGINT NOT NULL,
		to_no BIGINT NOT NULL,
		qty BIGINT NOT NULL,
		rate NUMERIC(15,2) NOT NULL,
		amount NUMERIC(15,2) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sale_lines_ticket
		ON doc_sale_lines(ticket_id)`,

	`CREATE TABLE IF NOT EXISTS reg_stock_ledger (
		line_id UUID PRIMARY KEY,
		source_id UUID NOT NULL,
		source_type TEXT NOT NULL,
		period TIMESTAMPTZ NOT NULL,
		ticket_id UUID NOT NULL REFERENCES cat_tickets(id),
		delta BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stock_ledger_source
		ON reg_stock_ledger(source_id)`,

	`CREATE INDEX IF NOT EXISTS idx_stock_ledger_ticket
		ON reg_stock_ledger(ticket_id)`,

	`CREATE TABLE IF NOT EXISTS prc_distributor_prices (
		distributor_id UUID NOT NULL REFERENCES cat_distributors(id),
		ticket_id UUID NOT NULL REFERENCES cat_tickets(id),
		rate NUMERIC(15,2) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (distributor_id, ticket_id)
	)`,

	`CREATE TABLE IF NOT EXISTS prc_party_prices (
		party_id UUID NOT NULL REFERENCES cat_parties(id),
		ticket_id UUID NOT NULL REFERENCES cat_tickets(id),
		rate NUMERIC(15,2) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (party_id, ticket_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		changes JSONB,
		changes_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_entity
		ON sys_audit(entity_type, entity_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		last_login_at TIMESTAMPTZ,
		failed_login_attempts INTEGER NOT NULL DEFAULT 0,
		locked_until TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1
	)`,
}

// EnsureSchema creates missing tables and indexes at startup.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	logger.Info(ctx, "database schema ensured")
	return nil
}
