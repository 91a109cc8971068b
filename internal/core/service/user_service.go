package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/core/auth"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

const (
	msgCredentialsRequired = "username and password required."
	msgCredentialsTooShort = "username and password need to be at least 3 characters long."
)

// UserService implements registration and the user listing.
type UserService struct {
	users  ports.UserRepository
	blogs  ports.BlogRepository
	hasher *auth.Hasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, blogs ports.BlogRepository, hasher *auth.Hasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, blogs: blogs, hasher: hasher, logger: logger}
}

// Register validates the input, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewValidationError(msgCredentialsRequired)
	}
	if utf8.RuneCountInString(in.Username) < domain.MinCredentialLength ||
		utf8.RuneCountInString(in.Password) < domain.MinCredentialLength {
		return nil, domain.NewValidationError(msgCredentialsTooShort)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// ListUsers returns every user with the blogs it created.
func (s *UserService) ListUsers(ctx context.Context) ([]ports.UserWithBlogs, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserWithBlogs, 0, len(users))
	for _, u := range users {
		blogs, err := s.blogs.FindByCreator(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list users: blogs of %s: %w", u.ID, err)
		}
		out = append(out, ports.UserWithBlogs{User: u, Blogs: blogs})
	}
	return out, nil
}
