package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations returns the ordered schema statements for a dialect.
// Each statement is idempotent.
func migrations(d Dialect) []string {
	if d == Postgres {
		return []string{
			`CREATE TABLE IF NOT EXISTS listings (
				id                  BIGINT      PRIMARY KEY,
				title               TEXT        NOT NULL DEFAULT '',
				description         TEXT,
				price               TEXT        NOT NULL DEFAULT '',
				transaction_type    TEXT        NOT NULL DEFAULT '',
				neighborhood        TEXT        NOT NULL DEFAULT '',
				surface_area        TEXT        NOT NULL DEFAULT '',
				bedroom_count       INTEGER     NOT NULL DEFAULT 0,
				publication_date    DATE,
				retrieval_timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				source              TEXT        NOT NULL DEFAULT '',
				url                 TEXT        UNIQUE,
				contact_name        TEXT,
				contact_phone       TEXT,
				contact_email       TEXT,
				contact_whatsapp    TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_listings_publication_date ON listings(publication_date)`,
			`CREATE INDEX IF NOT EXISTS idx_listings_retrieval ON listings(retrieval_timestamp)`,
		}
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id                  INTEGER  PRIMARY KEY,
			title               TEXT     NOT NULL DEFAULT '',
			description         TEXT,
			price               TEXT     NOT NULL DEFAULT '',
			transaction_type    TEXT     NOT NULL DEFAULT '',
			neighborhood        TEXT     NOT NULL DEFAULT '',
			surface_area        TEXT     NOT NULL DEFAULT '',
			bedroom_count       INTEGER  NOT NULL DEFAULT 0,
			publication_date    TEXT,
			retrieval_timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			source              TEXT     NOT NULL DEFAULT '',
			url                 TEXT     UNIQUE,
			contact_name        TEXT,
			contact_phone       TEXT,
			contact_email       TEXT,
			contact_whatsapp    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_publication_date ON listings(publication_date)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_retrieval ON listings(retrieval_timestamp)`,
	}
}

// columnMigrations are columns added after the first release.
var columnMigrations = []struct {
	table, column, definition string
}{
	{"listings", "category", "TEXT"},
	{"listings", "image", "TEXT"},
}

// Migrate creates the listings schema. It is safe to run more than once.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for i, m := range migrations(d) {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(ctx, db, d, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	slog.Info("database schema ready", "dialect", string(d))
	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, d Dialect, table, column, definition string) error {
	if d == Postgres {
		_, err := db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, column, definition))
		return err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return nil // column already exists
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
