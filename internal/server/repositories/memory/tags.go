package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type tagRepository struct {
	s    *Store
	data *tables
}

func byName(a, b *models.Tag) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
}

func (r *tagRepository) List(context.Context) ([]*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Tag, 0, len(r.data.tags))
	for _, t := range r.data.tags {
		t := t
		result = append(result, &t)
	}
	slices.SortFunc(result, byName)
	return result, nil
}

func (r *tagRepository) ListByPost(_ context.Context, postID int64) ([]*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*models.Tag
	for pt := range r.data.postTags {
		if pt.PostID != postID {
			continue
		}
		if t, ok := r.data.tags[pt.TagID]; ok {
			result = append(result, &t)
		}
	}
	slices.SortFunc(result, byName)
	return result, nil
}

func (r *tagRepository) Get(_ context.Context, id int64) (*models.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.data.tags[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *tagRepository) Create(_ context.Context, tag *models.Tag) (*models.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(tag.Name, 0) {
		return nil, fmt.Errorf("%w: tag %q already exists", common.ErrorConflict, tag.Name)
	}

	r.s.nextTagID++
	tag.ID = r.s.nextTagID
	r.data.tags[tag.ID] = *tag
	return tag, nil
}

func (r *tagRepository) Update(_ context.Context, tag *models.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.tags[tag.ID]; !ok {
		return common.ErrorNotFound
	}
	if r.nameTaken(tag.Name, tag.ID) {
		return fmt.Errorf("%w: tag %q already exists", common.ErrorConflict, tag.Name)
	}
	r.data.tags[tag.ID] = *tag
	return nil
}

func (r *tagRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.data.tags[id]; !ok {
		return common.ErrorNotFound
	}
	for pt := range r.data.postTags {
		if pt.TagID == id {
			return foreignKeyError("tag", id)
		}
	}
	delete(r.data.tags, id)
	return nil
}

// nameTaken must be called with the lock held.
func (r *tagRepository) nameTaken(name string, exceptID int64) bool {
	for id, t := range r.data.tags {
		if id != exceptID && t.Name == name {
			return true
		}
	}
	return false
}
