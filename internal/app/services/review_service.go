package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/burak/courserate/internal/app/models"
	"github.com/burak/courserate/internal/app/repositories"
	"github.com/burak/courserate/internal/pkg/apperrors"
	"github.com/burak/courserate/internal/pkg/dberrors"
	"github.com/burak/courserate/internal/pkg/logger"
	"github.com/burak/courserate/internal/pkg/validation"
)

// ReviewService handles the review lifecycle for (user, course) pairs and
// the on-demand average rating.
type ReviewService struct {
	reviewRepo *repositories.ReviewRepository
	log        zerolog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo *repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		log:        logger.With("review_service"),
	}
}

// CreateReview persists a user's first review of a course. Fails with a
// validation error when the rating is outside 1-5 and with a conflict error
// when the user has already reviewed the course. The unique (user, course)
// constraint stays in place behind the pre-check; a foreign-key violation
// means the user or course no longer exists.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) error {
	if !validation.IsValidRating(review.Rating) {
		return apperrors.ErrInvalidRating
	}

	exists, err := s.reviewRepo.ExistsByUserAndCourse(ctx, review.UserID, review.CourseID)
	if err != nil {
		return apperrors.WrapStorageError("error creating review", err)
	}
	if exists {
		return apperrors.ErrReviewExists
	}

	if _, err := s.reviewRepo.Insert(ctx, review); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrReviewExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("user or course for review not found")
		}
		return apperrors.WrapStorageError("error creating review", err)
	}

	s.log.Info().
		Int64("userId", review.UserID).
		Int64("courseId", review.CourseID).
		Msg("Review created")
	return nil
}

// UpdateReview mutates the rating, comment and timestamp of an existing
// review. Fails with a validation error when the rating is outside 1-5 and
// with a not-found error when no review with that id exists.
func (s *ReviewService) UpdateReview(ctx context.Context, review *models.Review) error {
	if !validation.IsValidRating(review.Rating) {
		return apperrors.ErrInvalidRating
	}

	err := s.reviewRepo.Update(ctx, review)
	if errors.Is(err, repositories.ErrReviewNotFound) {
		return apperrors.ErrReviewNotFound
	}
	if err != nil {
		return apperrors.WrapStorageError("error updating review", err)
	}

	s.log.Info().Int64("reviewId", review.ID).Msg("Review updated")
	return nil
}

// DeleteReview removes a review. Fails with a not-found error when no
// review with that id exists; deleting an absent review never silently
// succeeds.
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	err := s.reviewRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrReviewNotFound) {
		return apperrors.ErrReviewNotFound
	}
	if err != nil {
		return apperrors.WrapStorageError("error deleting review", err)
	}

	s.log.Info().Int64("reviewId", id).Msg("Review deleted")
	return nil
}

// ReviewExists reports whether the user has already reviewed the course.
// Degrades to false on storage failure.
func (s *ReviewService) ReviewExists(ctx context.Context, userID, courseID int64) bool {
	exists, err := s.reviewRepo.ExistsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		s.log.Warn().Err(err).Msg("Review existence check failed, treating as absent")
		return false
	}
	return exists
}

// AverageRating returns the arithmetic mean of the course's ratings as a
// floating-point value, with no rounding; formatting is a presentation
// concern. Returns 0.0 when the course has no reviews, and degrades to 0.0
// on storage failure instead of surfacing the error to the read path.
func (s *ReviewService) AverageRating(ctx context.Context, courseID int64) float64 {
	average, err := s.reviewRepo.AverageRatingByCourse(ctx, courseID)
	if err != nil {
		s.log.Warn().Err(err).Int64("courseId", courseID).Msg("Average rating computation failed, returning 0")
		return 0.0
	}
	return average
}

// GetReviewsByCourse retrieves all reviews for a course. Degrades to an
// empty list on storage failure.
func (s *ReviewService) GetReviewsByCourse(ctx context.Context, courseID int64) []*models.Review {
	reviews, err := s.reviewRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		s.log.Warn().Err(err).Int64("courseId", courseID).Msg("Review listing failed, returning empty list")
		return []*models.Review{}
	}
	if reviews == nil {
		return []*models.Review{}
	}
	return reviews
}

// GetReviewsByUser retrieves all reviews written by a user. Degrades to an
// empty list on storage failure.
func (s *ReviewService) GetReviewsByUser(ctx context.Context, userID int64) []*models.Review {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Int64("userId", userID).Msg("Review listing failed, returning empty list")
		return []*models.Review{}
	}
	if reviews == nil {
		return []*models.Review{}
	}
	return reviews
}
