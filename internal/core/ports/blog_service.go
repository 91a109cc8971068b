package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/stats"
)

// CreateBlogInput carries the parsed body of a create request plus the
// identity the request was authenticated as.
type CreateBlogInput struct {
	Title          string
	Author         string
	URL            string
	Likes          *int // nil means the client omitted it
	Creator        *domain.User
	IdempotencyKey string
}

// DeleteBlogInput identifies the blog to remove and who is asking.
type DeleteBlogInput struct {
	BlogID    string
	Requester *domain.User
}

// BlogStats is the aggregate view over all stored blogs.
type BlogStats struct {
	TotalLikes int
	Favorite   *stats.Favorite // nil when there are no blogs
}

// BlogService defines the blog use cases.
type BlogService interface {
	CreateBlog(ctx context.Context, input CreateBlogInput) (*domain.Blog, error)
	GetBlog(ctx context.Context, id string) (*domain.Blog, error)
	ListBlogs(ctx context.Context) ([]*domain.Blog, error)
	UpdateLikes(ctx context.Context, id string, likes int) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, input DeleteBlogInput) error
	Stats(ctx context.Context) (*BlogStats, error)
}
