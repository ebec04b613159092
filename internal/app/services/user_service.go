package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/burak/courserate/internal/app/auth"
	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/app/repositories"
	"github.com/burak/courserate/internal/pkg/apperrors"
	"github.com/burak/courserate/internal/pkg/dberrors"
	"github.com/burak/courserate/internal/pkg/logger"
	"github.com/burak/courserate/internal/pkg/passwords"
	"github.com/burak/courserate/internal/pkg/validation"
)

// UserService handles registration, authentication and the current-user
// session.
type UserService struct {
	userRepo *repositories.UserRepository
	sessions *auth.SessionManager
	hasher   passwords.Hasher
	log      zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, sessions *auth.SessionManager, hasher passwords.Hasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		log:      logger.With("user_service"),
	}
}

// Register creates a new user account. Fails with a validation error if the
// username is empty or the password is shorter than 8 characters, and with
// a conflict error if the username is taken. The existence pre-check plus
// insert is safe only because the system has a single writer; the unique
// constraint on username remains the final arbiter and its violation is
// reported as the same conflict.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	if !validation.IsValidUsername(username) {
		return apperrors.ErrUsernameEmpty
	}
	if !validation.IsValidPassword(password) {
		return apperrors.ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return apperrors.WrapStorageError("error registering user", err)
	}
	if exists {
		return apperrors.ErrUsernameExists
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.WrapStorageError("error hashing password", err)
	}

	user := models.NewUser(username, stored)
	if _, err := s.userRepo.Insert(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUsernameExists
		}
		return apperrors.WrapStorageError("error registering user", err)
	}

	s.log.Info().Str("username", username).Msg("User registered")
	return nil
}

// Login authenticates a user and starts a session. Fails with
// ErrNotAuthenticated when no matching user exists or the password does not
// match; the two cases are deliberately indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return nil, apperrors.WrapStorageError("error logging in", err)
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, apperrors.ErrNotAuthenticated
	}

	session := s.sessions.Create(user)
	s.log.Info().Str("username", username).Msg("User logged in")
	return session, nil
}

// Logout clears the active session. Sessions held by callers stop
// validating immediately.
func (s *UserService) Logout() {
	s.sessions.Clear()
	s.log.Info().Msg("User logged out")
}

// CurrentUser resolves the session back to its user record. Fails with
// ErrNotAuthenticated when the session is not the active one.
func (s *UserService) CurrentUser(ctx context.Context, session *auth.Session) (*models.User, error) {
	if !s.sessions.Validate(session) {
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err != nil {
		return nil, apperrors.WrapStorageError("error resolving current user", err)
	}
	return user, nil
}
