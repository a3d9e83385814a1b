package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/memory"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/posttags"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	users *UserService
	posts *PostService
	tags  *TagService
}

func newFixture() *fixture {
	store := memory.NewStore()
	posts := NewPostService(store, store)
	posts.now = func() time.Time { return fixedNow }
	return &fixture{
		store: store,
		users: NewUserService(store, store),
		posts: posts,
		tags:  NewTagService(store, store),
	}
}

func (f *fixture) user(t *testing.T, first, last string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), UserInput{FirstName: first, LastName: last})
	require.NoError(t, err)
	return u
}

func (f *fixture) tag(t *testing.T, name string) *models.Tag {
	t.Helper()
	tag, err := f.tags.Create(context.Background(), TagInput{Name: name})
	require.NoError(t, err)
	return tag
}

func (f *fixture) post(t *testing.T, userID int64, title string, tagIDs ...int64) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), userID, PostInput{Title: title, Content: "body", TagIDs: tagIDs})
	require.NoError(t, err)
	return p
}

// failingManager wraps the store and swaps in a post/tag repository that
// fails every Add with err.
type failingManager struct {
	*memory.Store
	err error
}

func (m failingManager) PostTags(db dbx.DBTX) posttags.Repository {
	return failingPostTags{Repository: m.Store.PostTags(db), err: m.err}
}

type failingPostTags struct {
	posttags.Repository
	err error
}

func (r failingPostTags) Add(context.Context, int64, int64) error {
	return r.err
}

func hasTag(d *PostDetails, id int64) bool {
	for _, t := range d.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
