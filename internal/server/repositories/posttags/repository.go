package posttags

import "context"

// Repository maintains the post/tag association rows.
type Repository interface {
	Add(ctx context.Context, postID, tagID int64) error
	DeleteByPost(ctx context.Context, postID int64) error
	DeleteByTag(ctx context.Context, tagID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
