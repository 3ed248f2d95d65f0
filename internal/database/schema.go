// FilePath: internal/database/schema.go
package database

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so the hub can bootstrap a fresh database
// on first start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sources (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		base_url   TEXT NOT NULL,
		api_key    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id            TEXT PRIMARY KEY,
		source_id     TEXT NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		search_filter JSONB NOT NULL DEFAULT '{}',
		exclude_paths JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		UNIQUE (source_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS devices (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		ip         TEXT NOT NULL DEFAULT '',
		port       INTEGER NOT NULL DEFAULT 8080,
		profile    TEXT NOT NULL DEFAULT '',
		display    JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the hub tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.GetDB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}
	return nil
}
