package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/001_members.up.sql
var membersMigrationSQL string

// EnsureSchema applies the members migration when the table is missing.
// The SQL uses IF NOT EXISTS so it is safe to re-run.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasMembersTable(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("database schema missing members table; applying migration")
		if _, err := db.Pool.Exec(ctx, membersMigrationSQL); err != nil {
			return fmt.Errorf("apply members migration: %w", err)
		}

		exists, err = db.hasMembersTable(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}
		if !exists {
			return fmt.Errorf("schema initialization incomplete: members table is still missing")
		}
	}

	slog.Info("database schema ensured")
	return nil
}

func (db *DB) hasMembersTable(ctx context.Context) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			  AND table_name = 'members'
		)
	`).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
