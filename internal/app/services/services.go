package services

import (
	"github.com/burak/courserate/internal/app/auth"
	"github.com/burak/courserate/internal/app/repositories"
	"github.com/burak/courserate/internal/pkg/passwords"
)

// Services defined in this package:
// - UserService: registration, login/logout and the current-user session
// - CourseService: catalog validation, add, lookup and search
// - ReviewService: review lifecycle and the on-demand average rating

// Services holds all the service instances. The UI layer talks to these
// and never to the repositories or the connection directly.
type Services struct {
	UserService   *UserService
	CourseService *CourseService
	ReviewService *ReviewService
}

// NewServices initializes all services over the shared repositories
func NewServices(repos *repositories.Repositories, sessions *auth.SessionManager, hasher passwords.Hasher) *Services {
	return &Services{
		UserService:   NewUserService(repos.UserRepository, sessions, hasher),
		CourseService: NewCourseService(repos.CourseRepository),
		ReviewService: NewReviewService(repos.ReviewRepository),
	}
}
