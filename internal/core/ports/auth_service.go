package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
