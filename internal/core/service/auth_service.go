package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/core/auth"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// AuthService implements login.
type AuthService struct {
	users  ports.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}
