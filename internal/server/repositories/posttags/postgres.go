// Package posttags stores the post/tag association in PostgreSQL.
package posttags

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add links a tag to a post. An existing pair is reported as common.ErrorConflict.
func (r *PostgresRepository) Add(ctx context.Context, postID, tagID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: post %d already has tag %d", common.ErrorConflict, postID, tagID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return r.exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
}

func (r *PostgresRepository) DeleteByTag(ctx context.Context, tagID int64) error {
	return r.exec(ctx, `DELETE FROM post_tags WHERE tag_id = $1`, tagID)
}

// DeleteByUser drops the associations of every post owned by the user.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) error {
	query :=
		`DELETE FROM post_tags
		 WHERE post_id IN (SELECT id FROM posts WHERE user_id = $1)
		 `

	return r.exec(ctx, query, userID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
