package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/repomanager"
)

// TagDetails is a tag with the posts carrying it.
type TagDetails struct {
	Tag   *models.Tag
	Posts []*models.Post
}

type TagService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewTagService(tx dbx.Transactor, m repomanager.RepositoryManager) *TagService {
	return &TagService{tx: tx, repomanager: m}
}

func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.repomanager.Tags(s.tx.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}
	return tags, nil
}

// Get returns the tag and its posts, or common.ErrorNotFound.
func (s *TagService) Get(ctx context.Context, id int64) (*TagDetails, error) {
	conn := s.tx.Conn()

	tag, err := s.repomanager.Tags(conn).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.repomanager.Posts(conn).ListByTag(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing posts of tag %d: %w", id, err)
	}

	return &TagDetails{Tag: tag, Posts: posts}, nil
}

// Create adds a tag. A taken name yields common.ErrorConflict.
func (s *TagService) Create(ctx context.Context, in TagInput) (*models.Tag, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: in.Name}
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		tag, err = s.repomanager.Tags(tx).Create(ctx, tag)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating tag: %w", err)
	}

	return tag, nil
}

// Update renames a tag. A taken name yields common.ErrorConflict.
func (s *TagService) Update(ctx context.Context, id int64, in TagInput) (*models.Tag, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tag := &models.Tag{ID: id, Name: in.Name}
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Tags(tx).Update(ctx, tag)
	})
	if err != nil {
		return nil, fmt.Errorf("error updating tag %d: %w", id, err)
	}

	return tag, nil
}

// Delete removes the tag after detaching it from every post.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tags(tx).Get(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.PostTags(tx).DeleteByTag(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Tags(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting tag %d: %w", id, err)
	}
	return nil
}
