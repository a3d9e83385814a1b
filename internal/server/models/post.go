package models

import "time"

// Post belongs to exactly one User and carries any number of tags.
type Post struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UserID    int64
}
