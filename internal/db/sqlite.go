package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/burak/courserate/internal/pkg/logger"
)

// Connection lifecycle misuse is a programmer error; these surface it
// instead of letting a later statement fail obscurely.
var (
	ErrAlreadyOpen = errors.New("database connection is already open")
	ErrNotOpen     = errors.New("database connection is not open")
)

// busyTimeoutMS is how long SQLite waits on a locked database file before
// returning SQLITE_BUSY.
const busyTimeoutMS = 5000

// Manager owns the single physical SQLite connection. Auto-commit is
// disabled for the lifetime of the connection: the first statement after
// Open, Commit or Rollback begins an implicit transaction that stays open
// until the caller commits or rolls back. Repositories borrow the
// transaction per call but never hold it across calls.
//
// No internal locking is provided; serializing access is the caller's
// responsibility.
type Manager struct {
	db   *sql.DB
	conn *sql.Conn
	tx   *sql.Tx
	log  zerolog.Logger
}

// NewManager creates a manager with no connection. Open must be called
// before any other method.
func NewManager() *Manager {
	return &Manager{log: logger.With("db")}
}

// Open establishes the connection to the SQLite database file at path,
// creating the file if it does not exist. Fails with ErrAlreadyOpen if the
// manager already holds a connection. Use ":memory:" for a throwaway
// in-memory database.
func (m *Manager) Open(ctx context.Context, path string) error {
	if m.conn != nil {
		return ErrAlreadyOpen
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d", path, busyTimeoutMS)
	pool, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Pin everything to one physical connection so that pragmas and the
	// implicit transaction apply to all statements.
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)
	pool.SetConnMaxLifetime(0)

	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		pool.Close()
		return fmt.Errorf("failed to establish database connection: %w", err)
	}

	m.db = pool
	m.conn = conn
	m.log.Info().Str("path", path).Msg("Database connection opened")
	return nil
}

// EnableForeignKeys turns on foreign-key enforcement for this connection.
// Must be called once after Open and before any write that relies on
// cascade semantics; the pragma has no effect inside an open transaction.
func (m *Manager) EnableForeignKeys(ctx context.Context) error {
	if m.conn == nil {
		return ErrNotOpen
	}
	if m.tx != nil {
		return errors.New("cannot enable foreign keys inside an open transaction")
	}

	if _, err := m.conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign key enforcement: %w", err)
	}
	return nil
}

// Tx returns the current implicit transaction, beginning one if none is
// open. Every statement issued through the manager runs inside this
// transaction until Commit or Rollback ends it.
func (m *Manager) Tx(ctx context.Context) (*sql.Tx, error) {
	if m.conn == nil {
		return nil, ErrNotOpen
	}

	if m.tx == nil {
		tx, err := m.conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		m.tx = tx
	}
	return m.tx, nil
}

// InTransaction reports whether an implicit transaction is currently open.
func (m *Manager) InTransaction() bool {
	return m.tx != nil
}

// Commit commits all changes since Open or since the last Commit/Rollback.
// Committing with no open transaction is a no-op, matching a commit issued
// right after a previous one.
func (m *Manager) Commit() error {
	if m.conn == nil {
		return ErrNotOpen
	}
	if m.tx == nil {
		return nil
	}

	tx := m.tx
	m.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards all changes since Open or since the last
// Commit/Rollback. Rolling back with no open transaction is a no-op.
func (m *Manager) Rollback() error {
	if m.conn == nil {
		return ErrNotOpen
	}
	if m.tx == nil {
		return nil
	}

	tx := m.tx
	m.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Close releases the connection. Fails with ErrNotOpen if the connection
// was never opened or is already closed. An open transaction is rolled
// back; uncommitted changes are lost.
func (m *Manager) Close() error {
	if m.conn == nil {
		return ErrNotOpen
	}

	if m.tx != nil {
		if err := m.Rollback(); err != nil {
			m.log.Error().Err(err).Msg("Failed to rollback open transaction on close")
		}
	}

	connErr := m.conn.Close()
	poolErr := m.db.Close()
	m.conn = nil
	m.db = nil

	if connErr != nil {
		return fmt.Errorf("failed to close connection: %w", connErr)
	}
	if poolErr != nil {
		return fmt.Errorf("failed to close database: %w", poolErr)
	}
	m.log.Info().Msg("Database connection closed")
	return nil
}
