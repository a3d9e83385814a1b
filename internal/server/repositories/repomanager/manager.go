package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/posttags"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/tags"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle, so the same
// repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Tags(db dbx.DBTX) tags.Repository
	PostTags(db dbx.DBTX) posttags.Repository
}
