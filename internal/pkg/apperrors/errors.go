package apperrors

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by a service wraps exactly one of these,
// so callers can branch on the category without string matching.
var (
	// ErrValidation means the input violates a business rule (format, length,
	// numeric range, emptiness). Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrConflict means a uniqueness invariant would be violated (duplicate
	// username, duplicate course triple, duplicate user/course review).
	ErrConflict = errors.New("conflict")

	// ErrNotFound means an update or delete targeted a nonexistent id.
	ErrNotFound = errors.New("resource not found")

	// ErrStorage means the underlying engine rejected a statement or the
	// connection is unavailable. Any in-flight transaction has already been
	// rolled back by the time this surfaces.
	ErrStorage = errors.New("storage failure")

	// ErrNotAuthenticated means a login attempt failed or an operation was
	// invoked without a valid session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// User errors
var (
	ErrUsernameEmpty    = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	ErrUsernameExists   = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
)

// Course errors
var (
	ErrInvalidMnemonic = fmt.Errorf("%w: subject mnemonic must be 2-4 letters", ErrValidation)
	ErrInvalidNumber   = fmt.Errorf("%w: course number must be exactly 4 digits", ErrValidation)
	ErrInvalidTitle    = fmt.Errorf("%w: title must be between 1 and 50 characters", ErrValidation)
	ErrCourseExists    = fmt.Errorf("%w: course already exists", ErrConflict)
	ErrCourseNotFound  = fmt.Errorf("%w: course not found", ErrNotFound)
)

// Review errors
var (
	ErrInvalidRating  = fmt.Errorf("%w: rating must be an integer between 1 and 5", ErrValidation)
	ErrReviewExists   = fmt.Errorf("%w: course has already been reviewed by this user", ErrConflict)
	ErrReviewNotFound = fmt.Errorf("%w: review not found", ErrNotFound)
)

// CustomError carries an error category plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message naming the
// violated rule.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidation, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewStorageError creates a storage error with a message.
func NewStorageError(message string) error {
	return &CustomError{Err: ErrStorage, Message: message}
}

// WrapStorageError creates a storage error that keeps the underlying engine
// error text for logging while callers still match on ErrStorage.
func WrapStorageError(message string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, message, err)
}

// IsValidation reports whether err is in the validation category.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict reports whether err is in the conflict category.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFound reports whether err is in the not-found category.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorage reports whether err is in the storage category.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
