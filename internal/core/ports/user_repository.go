package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create stores a new user and returns it with its assigned ID.
	// A taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
