package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/core/domain"
)

const bearerScheme = "bearer"

// UserFinder resolves a user ID to a live record.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// ParseBearer extracts the token from an Authorization header value of the
// form "bearer <token>". The scheme is matched case-insensitively.
func ParseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// Guard authenticates requests from their Authorization header.
type Guard struct {
	tokens *TokenService
	users  UserFinder
	log    zerolog.Logger
}

func NewGuard(tokens *TokenService, users UserFinder, log zerolog.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: log}
}

// Authenticate resolves header to the user it was issued for.
//
// It returns domain.ErrMissingToken when no bearer token is present and
// domain.ErrInvalidToken when the token does not validate or its user no
// longer exists. Store failures are returned wrapped.
func (g *Guard) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	raw, ok := ParseBearer(header)
	if !ok {
		return nil, domain.ErrMissingToken
	}

	id, err := g.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	user, err := g.users.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrMalformedID) {
			g.log.Debug().Str("user_id", id.UserID).Msg("token subject no longer exists")
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}
