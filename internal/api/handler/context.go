package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/domain"
)

// ctxUser returns the user injected by the Authenticate middleware. Its
// absence means the route was wired without the middleware, which is
// treated as an unauthenticated request.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
