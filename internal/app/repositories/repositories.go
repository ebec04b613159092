package repositories

import (
	"errors"
	"fmt"

	"github.com/burak/courserate/internal/db"
)

// Row-absent sentinels. Repositories map sql.ErrNoRows onto these so that
// services never see driver-level errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrReviewNotFound = errors.New("review not found")
)

// rollbackOnError rolls the enclosing transaction back after a failed write
// so the connection is not left holding partial, uncommitted changes. The
// original write error is returned; a rollback failure is attached to it.
func rollbackOnError(mgr *db.Manager, err error) error {
	if rbErr := mgr.Rollback(); rbErr != nil {
		return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
	}
	return err
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository   *UserRepository
	CourseRepository *CourseRepository
	ReviewRepository *ReviewRepository
}

// NewRepositories initializes all repositories over the shared connection
func NewRepositories(mgr *db.Manager) *Repositories {
	return &Repositories{
		UserRepository:   NewUserRepository(mgr),
		CourseRepository: NewCourseRepository(mgr),
		ReviewRepository: NewReviewRepository(mgr),
	}
}
