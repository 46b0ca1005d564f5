package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/postgres/001_action_logs.up.sql
var initialMigrationSQL string

//go:embed migrations/postgres/002_trash_slot.up.sql
var trashSlotMigrationSQL string

var requiredTables = []string{
	"action_logs",
}

func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	exists, err := db.hasAllRequiredTables(ctx)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}

	if !exists {
		slog.Info("journal schema missing tables; applying initial migration")
		if _, err := db.Pool.Exec(ctx, initialMigrationSQL); err != nil {
			return fmt.Errorf("apply initial migration: %w", err)
		}

		exists, err = db.hasAllRequiredTables(ctx)
		if err != nil {
			return fmt.Errorf("re-check tables after migration: %w", err)
		}

		if !exists {
			return fmt.Errorf("schema initialization incomplete: required tables are still missing")
		}
	}

	// 002 adds the trash slot column to journals created before it existed.
	if err := db.applyTrashSlotColumn(ctx); err != nil {
		return fmt.Errorf("apply trash slot migration: %w", err)
	}

	slog.Info("journal schema ensured")
	return nil
}

func (db *DB) applyTrashSlotColumn(ctx context.Context) error {
	var hasColumn bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public'
			  AND table_name = 'action_logs'
			  AND column_name = 'trash_slot'
		)
	`).Scan(&hasColumn)
	if err != nil {
		return fmt.Errorf("check trash_slot column: %w", err)
	}

	if !hasColumn {
		slog.Info("applying trash slot migration (002)")
		if _, err := db.Pool.Exec(ctx, trashSlotMigrationSQL); err != nil {
			return fmt.Errorf("exec trash slot SQL: %w", err)
		}
	}

	return nil
}

func (db *DB) hasAllRequiredTables(ctx context.Context) (bool, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}

	return count == len(requiredTables), nil
}
