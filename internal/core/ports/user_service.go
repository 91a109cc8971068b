package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// UserWithBlogs is a user together with the blogs it created.
type UserWithBlogs struct {
	User  *domain.User
	Blogs []*domain.Blog
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]UserWithBlogs, error)
}
