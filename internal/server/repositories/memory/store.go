// Package memory is an in-process storage provider. It implements the
// repository manager and transactor contracts over maps, enforcing the same
// keys and constraints as the PostgreSQL schema. Transactions are serialized
// and stage their writes on a copy of the tables that is published on commit.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/posttags"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/tags"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/users"
)

type tables struct {
	users    map[int64]models.User
	posts    map[int64]models.Post
	tags     map[int64]models.Tag
	postTags map[models.PostTag]struct{}
}

func (t tables) clone() tables {
	return tables{
		users:    maps.Clone(t.users),
		posts:    maps.Clone(t.posts),
		tags:     maps.Clone(t.tags),
		postTags: maps.Clone(t.postTags),
	}
}

// Store holds all entities. The zero value is not usable; use NewStore.
type Store struct {
	txMu sync.Mutex

	mu   sync.RWMutex
	data tables

	// Sequences survive rollbacks, as PostgreSQL sequences do.
	nextUserID int64
	nextPostID int64
	nextTagID  int64
}

func NewStore() *Store {
	return &Store{
		data: tables{
			users:    make(map[int64]models.User),
			posts:    make(map[int64]models.Post),
			tags:     make(map[int64]models.Tag),
			postTags: make(map[models.PostTag]struct{}),
		},
	}
}

// Conn returns nil: repositories bound to it read committed data.
func (s *Store) Conn() dbx.DBTX {
	return nil
}

// WithTx runs fn exclusively against a private copy of the tables. The copy
// replaces the committed data only when fn returns nil, so readers outside
// the transaction never observe its intermediate state.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	h := &txHandle{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(ctx, h); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = h.data
	s.mu.Unlock()
	return nil
}

// tables returns the data a repository bound to db works on.
func (s *Store) tables(db dbx.DBTX) *tables {
	if h, ok := db.(*txHandle); ok {
		return &h.data
	}
	return &s.data
}

func (s *Store) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (s *Store) Users(db dbx.DBTX) users.Repository {
	return &userRepository{s: s, data: s.tables(db)}
}

func (s *Store) Posts(db dbx.DBTX) posts.Repository {
	return &postRepository{s: s, data: s.tables(db)}
}

func (s *Store) Tags(db dbx.DBTX) tags.Repository {
	return &tagRepository{s: s, data: s.tables(db)}
}

func (s *Store) PostTags(db dbx.DBTX) posttags.Repository {
	return &postTagRepository{s: s, data: s.tables(db)}
}

var errNoSQL = errors.New("memory store does not execute SQL")

// txHandle is the DBTX passed to a transaction. It carries the staged tables;
// its SQL methods are never called by memory repositories.
type txHandle struct {
	data tables
}

func (*txHandle) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoSQL
}

func (*txHandle) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoSQL
}

func (*txHandle) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func foreignKeyError(table string, id int64) error {
	return fmt.Errorf("db error: foreign key violation: %s %d is still referenced", table, id)
}
