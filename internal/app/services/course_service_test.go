package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burak/courserate/internal/pkg/apperrors"
)

func TestAddCourseValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mnemonic string
		number   string
		title    string
		wantErr  error
	}{
		{name: "valid", mnemonic: "CS", number: "2110", title: "Software Development", wantErr: nil},
		{name: "four letter mnemonic", mnemonic: "APMA", number: "3100", title: "Probability", wantErr: nil},
		{name: "one letter mnemonic", mnemonic: "C", number: "2110", title: "Software", wantErr: apperrors.ErrInvalidMnemonic},
		{name: "five letter mnemonic", mnemonic: "APMAS", number: "2110", title: "Software", wantErr: apperrors.ErrInvalidMnemonic},
		{name: "digits in mnemonic", mnemonic: "C2", number: "2110", title: "Software", wantErr: apperrors.ErrInvalidMnemonic},
		{name: "three digit number", mnemonic: "CS", number: "211", title: "Software", wantErr: apperrors.ErrInvalidNumber},
		{name: "five digit number", mnemonic: "CS", number: "21100", title: "Software", wantErr: apperrors.ErrInvalidNumber},
		{name: "letters in number", mnemonic: "CS", number: "21a0", title: "Software", wantErr: apperrors.ErrInvalidNumber},
		{name: "empty title", mnemonic: "CS", number: "2120", title: "", wantErr: apperrors.ErrInvalidTitle},
		{name: "whitespace title", mnemonic: "CS", number: "2120", title: "   ", wantErr: apperrors.ErrInvalidTitle},
		{name: "title at max length", mnemonic: "CS", number: "2130", title: strings.Repeat("x", 50), wantErr: nil},
		{name: "title over max length", mnemonic: "CS", number: "2140", title: strings.Repeat("x", 51), wantErr: apperrors.ErrInvalidTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Services.CourseService.AddCourse(ctx, tt.mnemonic, tt.number, tt.title)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, apperrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddCourseNormalizesBeforeStoring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.addCourse(t, " cs ", "2110", " Software Development ")
	assert.Equal(t, "CS", course.Mnemonic)
	assert.Equal(t, "Software Development", course.Title)

	fetched, err := env.Services.CourseService.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS", fetched.Mnemonic)
	assert.Equal(t, "2110", fetched.Number)
	assert.Equal(t, "Software Development", fetched.Title)
}

func TestAddCourseDuplicateTripleConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addCourse(t, "CS", "2110", "Software Development")

	tests := []struct {
		name     string
		mnemonic string
		number   string
		title    string
	}{
		{name: "identical triple", mnemonic: "CS", number: "2110", title: "Software Development"},
		{name: "mnemonic case differs", mnemonic: "cs", number: "2110", title: "Software Development"},
		{name: "title case differs", mnemonic: "CS", number: "2110", title: "SOFTWARE DEVELOPMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Services.CourseService.AddCourse(ctx, tt.mnemonic, tt.number, tt.title)
			assert.ErrorIs(t, err, apperrors.ErrCourseExists)
			assert.True(t, apperrors.IsConflict(err))
		})
	}

	// A triple differing in any one field is a different course.
	_, err := env.Services.CourseService.AddCourse(ctx, "CS", "2110", "Software Development II")
	assert.NoError(t, err)
}

func TestGetCourseByIDAbsent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Services.CourseService.GetCourseByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchCourses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addCourse(t, "CS", "2110", "Software Development")
	env.addCourse(t, "APMA", "3100", "Probability")

	courses, err := env.Services.CourseService.SearchCourses(ctx, "prob")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "APMA", courses[0].Mnemonic)

	all, err := env.Services.CourseService.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
