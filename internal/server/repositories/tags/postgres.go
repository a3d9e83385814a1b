// Package tags stores post tags in PostgreSQL. Tag names are unique; a
// duplicate name is reported as common.ErrorConflict.
package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Tag, error) {
	return r.selectTags(ctx, `SELECT id, name FROM tags ORDER BY name`)
}

// ListByPost returns the tags attached to a post, ordered by name.
func (r *PostgresRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Tag, error) {
	query :=
		`SELECT t.id, t.name FROM tags t
		 JOIN post_tags pt ON pt.tag_id = t.id
		 WHERE pt.post_id = $1
		 ORDER BY t.name
		 `

	return r.selectTags(ctx, query, postID)
}

func (r *PostgresRepository) selectTags(ctx context.Context, query string, args ...any) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	query :=
		`INSERT INTO tags (name)
		 VALUES ($1)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, tag.Name).Scan(&tag.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: tag %q already exists", common.ErrorConflict, tag.Name)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tag, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tag *models.Tag) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tags SET name = $1 WHERE id = $2`, tag.Name, tag.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: tag %q already exists", common.ErrorConflict, tag.Name)
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the tag row only; associations must be gone already.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
