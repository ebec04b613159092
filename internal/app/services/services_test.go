package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/burak/courserate/internal/app/auth"
	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/app/repositories"
	"github.com/burak/courserate/internal/db"
	"github.com/burak/courserate/internal/pkg/passwords"
)

// testEnv bundles the wired service layer for a fresh in-memory database.
type testEnv struct {
	Services *Services
	Repos    *repositories.Repositories
	Sessions *auth.SessionManager
	DB       *db.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mgr := db.NewManager()
	ctx := context.Background()
	require.NoError(t, mgr.Open(ctx, ":memory:"))
	require.NoError(t, mgr.EnableForeignKeys(ctx))
	require.NoError(t, mgr.CreateTables(ctx))
	t.Cleanup(func() { mgr.Close() })

	repos := repositories.NewRepositories(mgr)
	sessions := auth.NewSessionManager()
	return &testEnv{
		Services: NewServices(repos, sessions, passwords.Plaintext{}),
		Repos:    repos,
		Sessions: sessions,
		DB:       mgr,
	}
}

// registerAndLogin registers a user and logs them in, returning the session.
func (e *testEnv) registerAndLogin(t *testing.T, username, password string) *auth.Session {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, e.Services.UserService.Register(ctx, username, password))
	session, err := e.Services.UserService.Login(ctx, username, password)
	require.NoError(t, err)
	return session
}

// addCourse adds a valid course and returns it.
func (e *testEnv) addCourse(t *testing.T, mnemonic, number, title string) *models.Course {
	t.Helper()

	course, err := e.Services.CourseService.AddCourse(context.Background(), mnemonic, number, title)
	require.NoError(t, err)
	return course
}
