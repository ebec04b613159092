package models

import "time"

// Review represents a single user's rating and comment for a course, based
// on the 'reviews' table. A review cannot exist without both its user and
// its course; deleting either cascades to the review.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"` // May be empty
	Timestamp time.Time `json:"timestamp" db:"timestamp"`       // Set by the repository on insert and update
}

// NewReview creates a review that has not been persisted yet. The timestamp
// is assigned by the repository when the review is written.
func NewReview(userID, courseID int64, rating int, comment string) *Review {
	return &Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
}

// Equal compares reviews by the (userID, courseID) pair that owns them,
// ignoring id and mutable fields.
func (r *Review) Equal(other *Review) bool {
	if other == nil {
		return false
	}
	return r.UserID == other.UserID && r.CourseID == other.CourseID
}
