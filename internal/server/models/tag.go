package models

// Tag is a globally unique label that can be attached to posts.
type Tag struct {
	ID   int64
	Name string
}

// PostTag is one row of the post/tag association.
type PostTag struct {
	PostID int64
	TagID  int64
}
