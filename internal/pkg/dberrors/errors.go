package dberrors

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// IsUniqueViolation checks if the error is a SQLite unique-constraint violation.
// The schema keeps uniqueness constraints (username, course triple, user/course
// review) even though services pre-check, so the database stays the final
// arbiter; this lets callers map the engine error onto a conflict.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

// IsForeignKeyViolation checks if the error is a SQLite foreign-key violation,
// raised when a review references a missing user or course.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// IsConstraintViolation checks if the error is any SQLite constraint violation.
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
