package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/repomanager"
)

// PostDetails is a post with its author and tags.
type PostDetails struct {
	Post   *models.Post
	Author *models.User
	Tags   []*models.Tag
}

type PostService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(tx dbx.Transactor, m repomanager.RepositoryManager) *PostService {
	return &PostService{tx: tx, repomanager: m, now: time.Now}
}

// Get returns the post with author and tags, or common.ErrorNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (*PostDetails, error) {
	conn := s.tx.Conn()

	post, err := s.repomanager.Posts(conn).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.repomanager.Users(conn).Get(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading author of post %d: %w", id, err)
	}

	tags, err := s.repomanager.Tags(conn).ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading tags of post %d: %w", id, err)
	}

	return &PostDetails{Post: post, Author: author, Tags: tags}, nil
}

// Create adds a post for an existing user, stamped with the current time, and
// attaches those of in.TagIDs that name existing tags.
func (s *PostService) Create(ctx context.Context, userID int64, in PostInput) (*models.Post, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	post := &models.Post{Title: in.Title, Content: in.Content, UserID: userID}
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Get(ctx, userID); err != nil {
			return err
		}

		post.CreatedAt = s.now()
		var err error
		if post, err = s.repomanager.Posts(tx).Create(ctx, post); err != nil {
			return err
		}

		return s.attachTags(ctx, tx, post.ID, in.TagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// Update overwrites title and content and replaces the tag set. On any error,
// including a conflicting association, nothing is changed.
func (s *PostService) Update(ctx context.Context, id int64, in PostInput) (*models.Post, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var post *models.Post
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if post, err = s.repomanager.Posts(tx).Get(ctx, id); err != nil {
			return err
		}

		post.Title = in.Title
		post.Content = in.Content
		if err := s.repomanager.Posts(tx).Update(ctx, post); err != nil {
			return err
		}

		if err := s.repomanager.PostTags(tx).DeleteByPost(ctx, id); err != nil {
			return err
		}
		return s.attachTags(ctx, tx, id, in.TagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("error updating post %d: %w", id, err)
	}

	return post, nil
}

// Delete removes the post and its tag links and returns the former owner's id.
func (s *PostService) Delete(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		post, err := s.repomanager.Posts(tx).Get(ctx, id)
		if err != nil {
			return err
		}
		ownerID = post.UserID

		if err := s.repomanager.PostTags(tx).DeleteByPost(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Posts(tx).Delete(ctx, id)
	})
	if err != nil {
		return 0, fmt.Errorf("error deleting post %d: %w", id, err)
	}

	return ownerID, nil
}

// attachTags links every id naming an existing tag; unknown ids are skipped.
func (s *PostService) attachTags(ctx context.Context, tx dbx.DBTX, postID int64, tagIDs []int64) error {
	tags := s.repomanager.Tags(tx)
	links := s.repomanager.PostTags(tx)

	for _, tagID := range uniqueIDs(tagIDs) {
		if _, err := tags.Get(ctx, tagID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return err
		}
		if err := links.Add(ctx, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}
