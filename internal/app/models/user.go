package models

// User defines the user model based on the 'users' table
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"` // Unique, case-sensitive
	Password string `json:"-" db:"password"`        // Stored form depends on the configured hashing mode
}

// NewUser creates a user that has not been persisted yet.
func NewUser(username, password string) *User {
	return &User{Username: username, Password: password}
}

// Equal compares users by username, the natural key, ignoring id.
func (u *User) Equal(other *User) bool {
	if other == nil {
		return false
	}
	return u.Username == other.Username
}
