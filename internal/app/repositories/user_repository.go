package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/db"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *db.Manager
}

// NewUserRepository creates a new user repository
func NewUserRepository(mgr *db.Manager) *UserRepository {
	return &UserRepository{db: mgr}
}

// Insert persists a new user and commits. The generated id is written back
// to the entity. A failed insert rolls the transaction back before the
// error is surfaced.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (int64, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO users (username, password)
		VALUES (?, ?)
	`

	result, err := tx.ExecContext(ctx, query, user.Username, user.Password)
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error inserting user: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error reading inserted user id: %w", err))
	}

	if err := r.db.Commit(); err != nil {
		return 0, err
	}

	user.ID = id
	return id, nil
}

// GetByID retrieves a user by ID. Returns ErrUserNotFound when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, username, password
		FROM users
		WHERE id = ?
	`

	var user models.User
	err = tx.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by username. The comparison is
// case-sensitive. Returns ErrUserNotFound when absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, username, password
		FROM users
		WHERE username = ?
	`

	var user models.User
	err = tx.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user by username: %w", err)
	}

	return &user, nil
}

// ExistsByUsername checks if a user with the given username exists.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all users.
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, username, password
		FROM users
	`

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Password); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// Delete removes a user by ID and commits. Reviews written by the user are
// removed by the cascade. Returns ErrUserNotFound when no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error deleting user: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error reading affected rows: %w", err))
	}
	if affected == 0 {
		return rollbackOnError(r.db, ErrUserNotFound)
	}

	return r.db.Commit()
}
