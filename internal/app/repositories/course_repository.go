package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/db"
)

// CourseRepository handles database operations for catalog courses
type CourseRepository struct {
	db *db.Manager
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(mgr *db.Manager) *CourseRepository {
	return &CourseRepository{db: mgr}
}

// Insert persists a new course and commits. The entity is expected to be
// normalized already; the generated id is written back to it. A failed
// insert rolls the transaction back before the error is surfaced.
func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) (int64, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO courses (mnemonic, number, title)
		VALUES (?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query, course.Mnemonic, course.Number, course.Title)
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error inserting course: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error reading inserted course id: %w", err))
	}

	if err := r.db.Commit(); err != nil {
		return 0, err
	}

	course.ID = id
	return id, nil
}

// GetByID retrieves a course by ID. Returns ErrCourseNotFound when absent.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, mnemonic, number, title
		FROM courses
		WHERE id = ?
	`

	var course models.Course
	err = tx.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Mnemonic,
		&course.Number,
		&course.Title,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, mnemonic, number, title
		FROM courses
	`
	return r.queryCourses(ctx, query)
}

// Search performs case-insensitive substring matching over mnemonic, number
// and title, combined with OR.
func (r *CourseRepository) Search(ctx context.Context, term string) ([]*models.Course, error) {
	query := `
		SELECT id, mnemonic, number, title
		FROM courses
		WHERE LOWER(mnemonic) LIKE LOWER(?) OR
		      number LIKE ? OR
		      LOWER(title) LIKE LOWER(?)
	`
	pattern := "%" + term + "%"
	return r.queryCourses(ctx, query, pattern, pattern, pattern)
}

// queryCourses runs a course query and maps the rows.
func (r *CourseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]*models.Course, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Mnemonic,
			&course.Number,
			&course.Title,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// ExistsByNaturalKey checks if a course with the same (mnemonic, number,
// title) triple exists. Mnemonic and title are compared case-insensitively
// so that re-adding a course with different casing still counts as the
// same course.
func (r *CourseRepository) ExistsByNaturalKey(ctx context.Context, course *models.Course) (bool, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE LOWER(mnemonic) = LOWER(?) AND number = ? AND LOWER(title) = LOWER(?)
		)`,
		course.Mnemonic, course.Number, course.Title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

// Delete removes a course by ID and commits. Reviews of the course are
// removed by the cascade. Returns ErrCourseNotFound when no row matched.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error deleting course: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error reading affected rows: %w", err))
	}
	if affected == 0 {
		return rollbackOnError(r.db, ErrCourseNotFound)
	}

	return r.db.Commit()
}
