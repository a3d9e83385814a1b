package tags

import (
	"context"

	"github.com/dmitrijs2005/blogly/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int64) error
}
