package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type postRepository struct {
	s    *Store
	data *tables
}

func (r *postRepository) Get(_ context.Context, id int64) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.data.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *postRepository) ListByUser(_ context.Context, userID int64) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(p models.Post) bool { return p.UserID == userID }), nil
}

func (r *postRepository) ListByTag(_ context.Context, tagID int64) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(p models.Post) bool {
		_, ok := r.data.postTags[models.PostTag{PostID: p.ID, TagID: tagID}]
		return ok
	}), nil
}

// collect must be called with the read lock held.
func (r *postRepository) collect(match func(models.Post) bool) []*models.Post {
	var result []*models.Post
	for _, p := range r.data.posts {
		if match(p) {
			p := p
			result = append(result, &p)
		}
	}
	slices.SortFunc(result, func(a, b *models.Post) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	return result
}

func (r *postRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.users[post.UserID]; !ok {
		return nil, fmt.Errorf("db error: foreign key violation: user %d does not exist", post.UserID)
	}

	r.s.nextPostID++
	post.ID = r.s.nextPostID
	r.data.posts[post.ID] = *post
	return post, nil
}

func (r *postRepository) Update(_ context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.data.posts[post.ID]
	if !ok {
		return common.ErrorNotFound
	}
	current.Title = post.Title
	current.Content = post.Content
	r.data.posts[post.ID] = current
	return nil
}

func (r *postRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.posts[id]; !ok {
		return common.ErrorNotFound
	}
	if r.referenced(id) {
		return foreignKeyError("post", id)
	}
	delete(r.data.posts, id)
	return nil
}

func (r *postRepository) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var doomed []int64
	for id, p := range r.data.posts {
		if p.UserID != userID {
			continue
		}
		if r.referenced(id) {
			return 0, foreignKeyError("post", id)
		}
		doomed = append(doomed, id)
	}
	for _, id := range doomed {
		delete(r.data.posts, id)
	}
	return int64(len(doomed)), nil
}

// referenced must be called with the lock held.
func (r *postRepository) referenced(postID int64) bool {
	for pt := range r.data.postTags {
		if pt.PostID == postID {
			return true
		}
	}
	return false
}
