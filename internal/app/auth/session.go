package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/burak/courserate/internal/app/models"
)

// ErrNoActiveSession is returned when an authenticated operation runs
// without a logged-in user.
var ErrNoActiveSession = errors.New("no active session")

// Session identifies one authenticated user. It is an explicit value handed
// to the caller at login and passed back to authenticated operations,
// rather than ambient process state.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	CreatedAt time.Time
}

// SessionManager tracks the single active session for the process: unset at
// startup, set on successful login, cleared on logout. The mutex only
// guards the manager's own state; database access stays single-writer.
type SessionManager struct {
	mu      sync.Mutex
	current *Session
}

// NewSessionManager creates a manager with no active session.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Create starts a session for the user, replacing any previous one.
func (m *SessionManager) Create(user *models.User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}
	m.current = session
	return session
}

// Current returns the active session, or ErrNoActiveSession if none.
func (m *SessionManager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, ErrNoActiveSession
	}
	return m.current, nil
}

// Validate reports whether the given session is the active one. A session
// kept by a caller across a logout no longer validates.
func (m *SessionManager) Validate(session *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return session != nil && m.current != nil && m.current.Token == session.Token
}

// Clear ends the active session. Clearing with no session is a no-op.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
}
