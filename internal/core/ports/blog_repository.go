package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// BlogRepository defines the persistence operations for blogs.
// Lookups by ID return domain.ErrBlogNotFound when no record matches and
// domain.ErrMalformedID when the ID cannot be a store key.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	// FindByCreator returns the blogs owned by userID, oldest first.
	FindByCreator(ctx context.Context, userID string) ([]*domain.Blog, error)
	// List returns every blog, oldest first.
	List(ctx context.Context) ([]*domain.Blog, error)
	UpdateLikes(ctx context.Context, id string, likes int) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
