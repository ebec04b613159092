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

// CourseService handles catalog operations
type CourseService struct {
	courseRepo *repositories.CourseRepository
	log        zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		log:        logger.With("course_service"),
	}
}

// validateCourse checks the catalog format rules and names the violated
// rule in the returned error.
func (s *CourseService) validateCourse(mnemonic, number, title string) error {
	if !validation.IsValidMnemonic(mnemonic) {
		return apperrors.ErrInvalidMnemonic
	}
	if !validation.IsValidNumber(number) {
		return apperrors.ErrInvalidNumber
	}
	if !validation.IsValidTitle(title) {
		return apperrors.ErrInvalidTitle
	}
	return nil
}

// AddCourse validates, normalizes and persists a new catalog entry. Fails
// with a conflict error when a course with the same (mnemonic, number,
// title) triple already exists, regardless of case differences. The
// existence pre-check produces the friendly duplicate error; the schema's
// unique constraint stays in place and its violation maps to the same
// conflict.
func (s *CourseService) AddCourse(ctx context.Context, mnemonic, number, title string) (*models.Course, error) {
	if err := s.validateCourse(mnemonic, number, title); err != nil {
		return nil, err
	}

	course := models.NewCourse(mnemonic, number, title)

	exists, err := s.CourseExists(ctx, course)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrCourseExists
	}

	if _, err := s.courseRepo.Insert(ctx, course); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrCourseExists
		}
		return nil, apperrors.WrapStorageError("error adding course", err)
	}

	s.log.Info().
		Str("mnemonic", course.Mnemonic).
		Str("number", course.Number).
		Msg("Course added")
	return course, nil
}

// CourseExists checks the natural-key triple, case-insensitively.
func (s *CourseService) CourseExists(ctx context.Context, course *models.Course) (bool, error) {
	exists, err := s.courseRepo.ExistsByNaturalKey(ctx, course)
	if err != nil {
		return false, apperrors.WrapStorageError("error checking course existence", err)
	}
	return exists, nil
}

// GetCourseByID retrieves a course by ID.
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrCourseNotFound) {
		return nil, apperrors.ErrCourseNotFound
	}
	if err != nil {
		return nil, apperrors.WrapStorageError("error retrieving course", err)
	}
	return course, nil
}

// GetAllCourses retrieves the whole catalog.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapStorageError("error retrieving courses", err)
	}
	return courses, nil
}

// SearchCourses performs a case-insensitive substring search over mnemonic,
// number and title. An empty term matches everything.
func (s *CourseService) SearchCourses(ctx context.Context, term string) ([]*models.Course, error) {
	courses, err := s.courseRepo.Search(ctx, term)
	if err != nil {
		return nil, apperrors.WrapStorageError("error searching courses", err)
	}
	return courses, nil
}
