package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsCarryTheirCategory(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		category  error
		predicate func(error) bool
	}{
		{name: "empty username", err: ErrUsernameEmpty, category: ErrValidation, predicate: IsValidation},
		{name: "short password", err: ErrPasswordTooShort, category: ErrValidation, predicate: IsValidation},
		{name: "invalid mnemonic", err: ErrInvalidMnemonic, category: ErrValidation, predicate: IsValidation},
		{name: "invalid rating", err: ErrInvalidRating, category: ErrValidation, predicate: IsValidation},
		{name: "duplicate username", err: ErrUsernameExists, category: ErrConflict, predicate: IsConflict},
		{name: "duplicate course", err: ErrCourseExists, category: ErrConflict, predicate: IsConflict},
		{name: "duplicate review", err: ErrReviewExists, category: ErrConflict, predicate: IsConflict},
		{name: "user not found", err: ErrUserNotFound, category: ErrNotFound, predicate: IsNotFound},
		{name: "review not found", err: ErrReviewNotFound, category: ErrNotFound, predicate: IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.category)
			assert.True(t, tt.predicate(tt.err))
		})
	}
}

func TestCategoriesAreDistinct(t *testing.T) {
	assert.False(t, IsConflict(ErrUsernameEmpty))
	assert.False(t, IsValidation(ErrUsernameExists))
	assert.False(t, IsNotFound(ErrCourseExists))
	assert.False(t, IsStorage(ErrReviewNotFound))
}

func TestCustomErrorMessageAndUnwrap(t *testing.T) {
	err := NewConflictError("course already exists in the catalog")
	assert.Equal(t, "course already exists in the catalog", err.Error())
	assert.ErrorIs(t, err, ErrConflict)

	var custom *CustomError
	assert.True(t, errors.As(err, &custom))
	assert.Equal(t, ErrConflict, custom.Unwrap())
}

func TestWrapStorageErrorKeepsUnderlyingText(t *testing.T) {
	underlying := errors.New("database is locked")
	err := WrapStorageError("error adding course", underlying)

	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "error adding course")
	assert.Contains(t, err.Error(), "database is locked")
}
