package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/db"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *db.Manager
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(mgr *db.Manager) *ReviewRepository {
	return &ReviewRepository{db: mgr}
}

// Insert persists a new review and commits. The timestamp is assigned here
// at insert time and written back to the entity together with the generated
// id. A failed insert rolls the transaction back before the error is
// surfaced.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) (int64, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, query,
		review.UserID, review.CourseID, review.Rating, review.Comment, now)
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error inserting review: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, rollbackOnError(r.db, fmt.Errorf("error reading inserted review id: %w", err))
	}

	if err := r.db.Commit(); err != nil {
		return 0, err
	}

	review.ID = id
	review.Timestamp = now
	return id, nil
}

// Update rewrites rating, comment and timestamp for an existing review and
// commits. Returns ErrReviewNotFound when no row matched.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE reviews
		SET rating = ?, comment = ?, timestamp = ?
		WHERE id = ?
	`

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, query, review.Rating, review.Comment, now, review.ID)
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error updating review: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error reading affected rows: %w", err))
	}
	if affected == 0 {
		return rollbackOnError(r.db, ErrReviewNotFound)
	}

	if err := r.db.Commit(); err != nil {
		return err
	}

	review.Timestamp = now
	return nil
}

// Delete removes a review by ID and commits. Returns ErrReviewNotFound when
// no row matched.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error deleting review: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return rollbackOnError(r.db, fmt.Errorf("error reading affected rows: %w", err))
	}
	if affected == 0 {
		return rollbackOnError(r.db, ErrReviewNotFound)
	}

	return r.db.Commit()
}

// GetByID retrieves a review by ID. Returns ErrReviewNotFound when absent.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, course_id, rating, comment, timestamp
		FROM reviews
		WHERE id = ?
	`

	review, err := scanReview(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving review: %w", err)
	}

	return review, nil
}

// GetByCourseID retrieves all reviews for a course.
func (r *ReviewRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Review, error) {
	query := `
		SELECT id, user_id, course_id, rating, comment, timestamp
		FROM reviews
		WHERE course_id = ?
	`
	return r.queryReviews(ctx, query, courseID)
}

// GetByUserID retrieves all reviews written by a user.
func (r *ReviewRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Review, error) {
	query := `
		SELECT id, user_id, course_id, rating, comment, timestamp
		FROM reviews
		WHERE user_id = ?
	`
	return r.queryReviews(ctx, query, userID)
}

// ExistsByUserAndCourse checks if the user has already reviewed the course.
func (r *ReviewRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = ? AND course_id = ?)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking review existence: %w", err)
	}

	return exists, nil
}

// AverageRatingByCourse computes the arithmetic mean of ratings for a
// course, recomputed on demand. Returns 0.0 when the course has no reviews.
func (r *ReviewRepository) AverageRatingByCourse(ctx context.Context, courseID int64) (float64, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return 0, err
	}

	var average float64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE course_id = ?`,
		courseID).Scan(&average)
	if err != nil {
		return 0, fmt.Errorf("error computing average rating: %w", err)
	}

	return average, nil
}

// queryReviews runs a review query and maps the rows.
func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*models.Review, error) {
	tx, err := r.db.Tx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reviews, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReview maps one row to a review. Comment is nullable in the schema;
// NULL maps to the empty string.
func scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	var comment sql.NullString
	if err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.CourseID,
		&review.Rating,
		&comment,
		&review.Timestamp,
	); err != nil {
		return nil, err
	}
	review.Comment = comment.String
	return &review, nil
}
