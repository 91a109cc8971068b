package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusOK, toUserResponse(user, nil))
}

// List returns every user with the blogs they created.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	list, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(list))
	for i, u := range list {
		out[i] = toUserResponse(u.User, u.Blogs)
	}
	return c.JSON(http.StatusOK, out)
}
