package db

import (
	"context"
	"fmt"
)

// Table definitions. Creation is idempotent so startup against an existing
// database file keeps its data.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		mnemonic TEXT NOT NULL,
		number TEXT NOT NULL,
		title TEXT NOT NULL,
		CONSTRAINT unique_course UNIQUE (mnemonic, number, title)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		course_id INTEGER NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT,
		timestamp TIMESTAMP NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
		CONSTRAINT unique_review UNIQUE (user_id, course_id)
	)`,
}

// CreateTables creates the users, courses and reviews tables if they do not
// already exist. Must run once at startup before any repository call.
func (m *Manager) CreateTables(ctx context.Context) error {
	tx, err := m.Tx(ctx)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := m.Rollback(); rbErr != nil {
				m.log.Error().Err(rbErr).Msg("Failed to rollback after schema error")
			}
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if err := m.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// ClearTables removes all rows from all three tables, leaving the tables
// in place. Maintenance operation for test and reset tooling.
func (m *Manager) ClearTables(ctx context.Context) error {
	tx, err := m.Tx(ctx)
	if err != nil {
		return err
	}

	for _, table := range []string{"reviews", "users", "courses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			if rbErr := m.Rollback(); rbErr != nil {
				m.log.Error().Err(rbErr).Msg("Failed to rollback after clear error")
			}
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	if err := m.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}
