package models

import "strings"

// Course represents a catalog entry based on the 'courses' table.
// Mnemonic is stored upper-cased and trimmed, title trimmed; number is text
// to preserve leading zeros.
type Course struct {
	ID       int64  `json:"id" db:"id"`
	Mnemonic string `json:"mnemonic" db:"mnemonic"`
	Number   string `json:"number" db:"number"`
	Title    string `json:"title" db:"title"`
}

// NewCourse creates a course with normalization applied.
func NewCourse(mnemonic, number, title string) *Course {
	c := &Course{Mnemonic: mnemonic, Number: number, Title: title}
	c.Normalize()
	return c
}

// Normalize applies the storage form: mnemonic upper-cased and trimmed,
// number and title trimmed.
func (c *Course) Normalize() {
	c.Mnemonic = strings.ToUpper(strings.TrimSpace(c.Mnemonic))
	c.Number = strings.TrimSpace(c.Number)
	c.Title = strings.TrimSpace(c.Title)
}

// Equal compares courses by the (mnemonic, number, title) natural key,
// ignoring id.
func (c *Course) Equal(other *Course) bool {
	if other == nil {
		return false
	}
	return c.Mnemonic == other.Mnemonic &&
		c.Number == other.Number &&
		c.Title == other.Title
}
