package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager opens an in-memory database with foreign keys on and the
// schema created.
func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mgr := NewManager()
	ctx := context.Background()
	require.NoError(t, mgr.Open(ctx, ":memory:"))
	require.NoError(t, mgr.EnableForeignKeys(ctx))
	require.NoError(t, mgr.CreateTables(ctx))

	t.Cleanup(func() {
		if mgr.conn != nil {
			mgr.Close()
		}
	})
	return mgr
}

func TestOpenTwiceFails(t *testing.T) {
	mgr := newTestManager(t)

	err := mgr.Open(context.Background(), ":memory:")
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestCloseWithoutOpenFails(t *testing.T) {
	mgr := NewManager()
	assert.ErrorIs(t, mgr.Close(), ErrNotOpen)
}

func TestCloseTwiceFails(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.Close())
	assert.ErrorIs(t, mgr.Close(), ErrNotOpen)
}

func TestOperationsAfterCloseFail(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.Close())

	ctx := context.Background()
	_, err := mgr.Tx(ctx)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, mgr.Commit(), ErrNotOpen)
	assert.ErrorIs(t, mgr.Rollback(), ErrNotOpen)
	assert.ErrorIs(t, mgr.EnableForeignKeys(ctx), ErrNotOpen)
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	tx, err := mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'password123')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())

	// Re-running startup against the existing schema must not destroy data.
	require.NoError(t, mgr.CreateTables(ctx))

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	var count int
	require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRollbackDiscardsUncommittedChanges(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	tx, err := mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'password123')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Rollback())

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	var count int
	require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCommitPersistsChanges(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	tx, err := mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'password123')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())
	assert.False(t, mgr.InTransaction())

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	var count int
	require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCommitAndRollbackWithoutTransactionAreNoops(t *testing.T) {
	mgr := newTestManager(t)

	assert.NoError(t, mgr.Commit())
	assert.NoError(t, mgr.Rollback())
}

func TestForeignKeyCascadeOnUserDelete(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	tx, err := mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'password123')`)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO courses (mnemonic, number, title) VALUES ('CS', '2110', 'Software Development')`)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reviews (user_id, course_id, rating, comment, timestamp)
		VALUES (1, 1, 5, 'great', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	var count int
	require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count))
	assert.Equal(t, 0, count, "deleting a user must cascade to its reviews")
}

func TestEnableForeignKeysInsideTransactionFails(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	_, err := mgr.Tx(ctx)
	require.NoError(t, err)
	assert.Error(t, mgr.EnableForeignKeys(ctx))
}

func TestClearTablesLeavesEmptyTables(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	tx, err := mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('alice', 'password123')`)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO courses (mnemonic, number, title) VALUES ('CS', '2110', 'Software Development')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())

	require.NoError(t, mgr.ClearTables(ctx))

	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	for _, table := range []string{"users", "courses", "reviews"} {
		var count int
		require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count))
		assert.Equal(t, 0, count, table)
	}
	require.NoError(t, mgr.Rollback())

	// Tables still exist and accept writes.
	tx, err = mgr.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES ('bob', 'password123')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Commit())
}
