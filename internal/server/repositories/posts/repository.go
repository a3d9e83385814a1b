package posts

import (
	"context"

	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Post, error)
	ListByTag(ctx context.Context, tagID int64) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
