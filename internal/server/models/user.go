// Package models defines the entities persisted by Blogly.
package models

import "strings"

// DefaultImageURL is the avatar used when a user has none.
const DefaultImageURL = "/static/person.jpg"

// Column limits of the users table.
const (
	MaxNameLength     = 50
	MaxImageURLLength = 255
)

// User is a blog author. Users own their posts.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	ImageURL  string
}

// FullName joins first and last name with a single space.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
