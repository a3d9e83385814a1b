// Package services contains the business rules of Blogly. Every mutation runs
// in a transaction obtained from a dbx.Transactor; repositories come from a
// repomanager.RepositoryManager bound to that transaction.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogly/internal/dbx"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/repositories/repomanager"
)

// UserProfile is a user with everything the detail page shows.
type UserProfile struct {
	User  *models.User
	Posts []*models.Post
	Tags  []*models.Tag
}

type UserService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewUserService(tx dbx.Transactor, m repomanager.RepositoryManager) *UserService {
	return &UserService{tx: tx, repomanager: m}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.tx.Conn()).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// Get returns the user or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.tx.Conn()).Get(ctx, id)
}

// Profile loads the user, the user's posts and the whole tag catalog.
func (s *UserService) Profile(ctx context.Context, id int64) (*UserProfile, error) {
	conn := s.tx.Conn()

	user, err := s.repomanager.Users(conn).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.repomanager.Posts(conn).ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing posts of user %d: %w", id, err)
	}

	tags, err := s.repomanager.Tags(conn).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}

	return &UserProfile{User: user, Posts: posts, Tags: tags}, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user := &models.User{FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL}
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Update overwrites all mutable fields of the user.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*models.User, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user := &models.User{ID: id, FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL}
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("error updating user %d: %w", id, err)
	}

	return user, nil
}

// Delete removes the user together with the user's posts and their tag links.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Get(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.PostTags(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if _, err := s.repomanager.Posts(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	return nil
}
