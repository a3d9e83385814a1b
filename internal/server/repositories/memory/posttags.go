package memory

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type postTagRepository struct {
	s    *Store
	data *tables
}

func (r *postTagRepository) Add(_ context.Context, postID, tagID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.posts[postID]; !ok {
		return fmt.Errorf("db error: foreign key violation: post %d does not exist", postID)
	}
	if _, ok := r.data.tags[tagID]; !ok {
		return fmt.Errorf("db error: foreign key violation: tag %d does not exist", tagID)
	}

	key := models.PostTag{PostID: postID, TagID: tagID}
	if _, ok := r.data.postTags[key]; ok {
		return fmt.Errorf("%w: post %d already has tag %d", common.ErrorConflict, postID, tagID)
	}
	r.data.postTags[key] = struct{}{}
	return nil
}

func (r *postTagRepository) DeleteByPost(_ context.Context, postID int64) error {
	r.deleteWhere(func(pt models.PostTag) bool { return pt.PostID == postID })
	return nil
}

func (r *postTagRepository) DeleteByTag(_ context.Context, tagID int64) error {
	r.deleteWhere(func(pt models.PostTag) bool { return pt.TagID == tagID })
	return nil
}

func (r *postTagRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for pt := range r.data.postTags {
		if p, ok := r.data.posts[pt.PostID]; ok && p.UserID == userID {
			delete(r.data.postTags, pt)
		}
	}
	return nil
}

func (r *postTagRepository) deleteWhere(match func(models.PostTag) bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for pt := range r.data.postTags {
		if match(pt) {
			delete(r.data.postTags, pt)
		}
	}
}
