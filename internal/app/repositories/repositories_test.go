package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/db"
)

// newTestRepos wires the repositories over a fresh in-memory database with
// foreign keys on and the schema created.
func newTestRepos(t *testing.T) (*Repositories, *db.Manager) {
	t.Helper()

	mgr := db.NewManager()
	ctx := context.Background()
	require.NoError(t, mgr.Open(ctx, ":memory:"))
	require.NoError(t, mgr.EnableForeignKeys(ctx))
	require.NoError(t, mgr.CreateTables(ctx))

	t.Cleanup(func() { mgr.Close() })
	return NewRepositories(mgr), mgr
}

// seedUser inserts a user and returns its id.
func seedUser(t *testing.T, repos *Repositories, username string) int64 {
	t.Helper()

	id, err := repos.UserRepository.Insert(context.Background(), models.NewUser(username, "password123"))
	require.NoError(t, err)
	return id
}

// seedCourse inserts a normalized course and returns its id.
func seedCourse(t *testing.T, repos *Repositories, mnemonic, number, title string) int64 {
	t.Helper()

	id, err := repos.CourseRepository.Insert(context.Background(), models.NewCourse(mnemonic, number, title))
	require.NoError(t, err)
	return id
}
