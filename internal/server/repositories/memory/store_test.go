package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repomanager.RepositoryManager = (*Store)(nil)
	_ dbx.Transactor                = (*Store)(nil)
)

func seedUser(t *testing.T, s *Store, first, last string) *models.User {
	t.Helper()
	u, err := s.Users(nil).Create(context.Background(), &models.User{FirstName: first, LastName: last, ImageURL: models.DefaultImageURL})
	require.NoError(t, err)
	return u
}

func seedPost(t *testing.T, s *Store, userID int64, title string, at time.Time) *models.Post {
	t.Helper()
	p, err := s.Posts(nil).Create(context.Background(), &models.Post{Title: title, Content: "c", CreatedAt: at, UserID: userID})
	require.NoError(t, err)
	return p
}

func seedTag(t *testing.T, s *Store, name string) *models.Tag {
	t.Helper()
	tag, err := s.Tags(nil).Create(context.Background(), &models.Tag{Name: name})
	require.NoError(t, err)
	return tag
}

func TestUsers_ListSortedAndIDsGenerated(t *testing.T) {
	s := NewStore()
	wick := seedUser(t, s, "John", "Wick")
	smith := seedUser(t, s, "Alice", "Smith")

	assert.Equal(t, int64(1), wick.ID)
	assert.Equal(t, int64(2), smith.ID)

	list, err := s.Users(nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice Smith", list[0].FullName())
	assert.Equal(t, "John Wick", list[1].FullName())
}

func TestUsers_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	u := seedUser(t, s, "Alice", "Smith")

	got, err := s.Users(nil).Get(context.Background(), u.ID)
	require.NoError(t, err)
	got.FirstName = "mutated"

	again, err := s.Users(nil).Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.FirstName)
}

func TestUsers_NotFound(t *testing.T) {
	s := NewStore()
	repo := s.Users(nil)

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Update(context.Background(), &models.User{ID: 99, FirstName: "a", LastName: "b"}), common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), common.ErrorNotFound)
}

func TestUsers_DeleteBlockedByPosts(t *testing.T) {
	s := NewStore()
	u := seedUser(t, s, "Alice", "Smith")
	seedPost(t, s, u.ID, "Hello", time.Now())

	err := s.Users(nil).Delete(context.Background(), u.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestPosts_ForeignKeyAndOrdering(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Posts(nil).Create(ctx, &models.Post{Title: "orphan", Content: "c", UserID: 42})
	require.Error(t, err)

	u := seedUser(t, s, "Alice", "Smith")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := seedPost(t, s, u.ID, "older", base)
	newer := seedPost(t, s, u.ID, "newer", base.Add(time.Hour))

	list, err := s.Posts(nil).ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestPosts_UpdateKeepsOwnerAndTimestamp(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "Alice", "Smith")
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := seedPost(t, s, u.ID, "Hello", at)

	require.NoError(t, s.Posts(nil).Update(ctx, &models.Post{ID: p.ID, Title: "Bye", Content: "now"}))

	got, err := s.Posts(nil).Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bye", got.Title)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, at, got.CreatedAt)
}

func TestTags_UniqueName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := seedTag(t, s, "go")
	other := seedTag(t, s, "sql")

	_, err := s.Tags(nil).Create(ctx, &models.Tag{Name: "go"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	err = s.Tags(nil).Update(ctx, &models.Tag{ID: other.ID, Name: "go"})
	assert.ErrorIs(t, err, common.ErrorConflict)

	require.NoError(t, s.Tags(nil).Update(ctx, &models.Tag{ID: first.ID, Name: "go"}), "renaming to own name is fine")

	got, err := s.Tags(nil).Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "go", got.Name)
}

func TestPostTags_Constraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "Alice", "Smith")
	p := seedPost(t, s, u.ID, "Hello", time.Now())
	tag := seedTag(t, s, "go")
	repo := s.PostTags(nil)

	require.NoError(t, repo.Add(ctx, p.ID, tag.ID))
	assert.ErrorIs(t, repo.Add(ctx, p.ID, tag.ID), common.ErrorConflict)
	assert.Error(t, repo.Add(ctx, p.ID, 999))
	assert.Error(t, repo.Add(ctx, 999, tag.ID))

	byPost, err := s.Tags(nil).ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []*models.Tag{{ID: tag.ID, Name: "go"}}, byPost)

	byTag, err := s.Posts(nil).ListByTag(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, p.ID, byTag[0].ID)

	assert.Error(t, s.Tags(nil).Delete(ctx, tag.ID), "tag is still referenced")
	assert.Error(t, s.Posts(nil).Delete(ctx, p.ID), "post is still referenced")

	require.NoError(t, repo.DeleteByTag(ctx, tag.ID))
	require.NoError(t, s.Tags(nil).Delete(ctx, tag.ID))
	require.NoError(t, s.Posts(nil).Delete(ctx, p.ID))
}

func TestPostTags_DeleteByUserAndPost(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "Alice", "Smith")
	bob := seedUser(t, s, "Bob", "Jones")
	p1 := seedPost(t, s, alice.ID, "a1", time.Now())
	p2 := seedPost(t, s, bob.ID, "b1", time.Now())
	tag := seedTag(t, s, "go")
	repo := s.PostTags(nil)
	require.NoError(t, repo.Add(ctx, p1.ID, tag.ID))
	require.NoError(t, repo.Add(ctx, p2.ID, tag.ID))

	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))

	n, err := s.Posts(nil).DeleteByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Posts(nil).DeleteByUser(ctx, bob.ID)
	assert.Error(t, err, "bob's post still carries a tag")

	require.NoError(t, repo.DeleteByPost(ctx, p2.ID))
	n, err = s.Posts(nil).DeleteByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWithTx_CommitKeepsChanges(t *testing.T) {
	s := NewStore()

	err := s.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.Tags(tx).Create(ctx, &models.Tag{Name: "go"})
		return err
	})
	require.NoError(t, err)

	list, err := s.Tags(s.Conn()).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "Alice", "Smith")
	p := seedPost(t, s, u.ID, "Hello", time.Now())
	keep := seedTag(t, s, "keep")
	require.NoError(t, s.PostTags(nil).Add(ctx, p.ID, keep.ID))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, s.PostTags(tx).DeleteByPost(ctx, p.ID))
		_, err := s.Tags(tx).Create(ctx, &models.Tag{Name: "new"})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	tags, err := s.Tags(nil).ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []*models.Tag{{ID: keep.ID, Name: "keep"}}, tags)

	all, err := s.Tags(nil).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	s := NewStore()

	func() {
		defer func() {
			require.NotNil(t, recover())
		}()
		_ = s.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
			_, err := s.Tags(tx).Create(ctx, &models.Tag{Name: "go"})
			require.NoError(t, err)
			panic("kaput")
		})
	}()

	all, err := s.Tags(nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunMigrations_NoOp(t *testing.T) {
	assert.NoError(t, NewStore().RunMigrations(context.Background(), nil))
}

func TestWithTx_StagedWritesInvisibleUntilCommit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "Alice", "Smith")
	p := seedPost(t, s, u.ID, "Hello", time.Now())
	tag := seedTag(t, s, "go")
	require.NoError(t, s.PostTags(nil).Add(ctx, p.ID, tag.ID))

	staged := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.PostTags(tx).DeleteByPost(ctx, p.ID); err != nil {
				return err
			}
			if _, err := s.Tags(tx).Create(ctx, &models.Tag{Name: "staged"}); err != nil {
				return err
			}
			close(staged)
			<-release
			return nil
		})
	}()

	<-staged
	during, err := s.Tags(s.Conn()).ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, during, 1)
	all, err := s.Tags(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	close(release)
	require.NoError(t, <-done)

	after, err := s.Tags(s.Conn()).ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, after)
	all, err = s.Tags(s.Conn()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUsers_ColumnLimits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Users(nil).Create(ctx, &models.User{FirstName: strings.Repeat("a", models.MaxNameLength+1), LastName: "b"})
	require.Error(t, err)

	u := seedUser(t, s, "Alice", "Smith")
	err = s.Users(nil).Update(ctx, &models.User{ID: u.ID, FirstName: "Alice", LastName: "Smith", ImageURL: strings.Repeat("x", models.MaxImageURLLength+1)})
	require.Error(t, err)
}
