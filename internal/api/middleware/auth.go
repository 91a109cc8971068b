package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/domain"
)

// UserContextKey is where Authenticate stores the resolved *domain.User.
const UserContextKey = "user"

// Authenticator resolves an Authorization header value to a live user.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.User, error)
}

// Authenticate rejects requests without a valid bearer token and injects the
// authenticated user into the context. Missing and invalid tokens get the
// same response.
func Authenticate(guard Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := guard.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			switch {
			case errors.Is(err, domain.ErrMissingToken):
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
			case errors.Is(err, domain.ErrInvalidToken):
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
			case err != nil:
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok && user != nil
}
