package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog operations.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /api/blogs.
//
// @Summary      List blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   blogResponse
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogListResponse(blogs))
}

// Get handles GET /api/blogs/:id.
//
// @Summary      Get a blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  blogResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.GetBlog(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Create handles POST /api/blogs. The authenticated user becomes the owner.
//
// @Summary      Create a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Key that makes retries return the first result"
// @Param        body             body      createBlogRequest  true   "Blog details"
// @Success      200              {object}  blogResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.service.CreateBlog(c.Request().Context(), ports.CreateBlogInput{
		Title:          req.Title,
		Author:         req.Author,
		URL:            req.URL,
		Likes:          req.Likes,
		Creator:        user,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Update handles PUT /api/blogs/:id. Liking is open to every caller.
//
// @Summary      Update the likes of a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Blog id"
// @Param        body  body      updateBlogRequest  true  "New like count"
// @Success      200   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.service.UpdateLikes(c.Request().Context(), c.Param("id"), *req.Likes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(blog))
}

// Delete handles DELETE /api/blogs/:id. Only the creator may delete.
//
// @Summary      Delete a blog
// @Tags         blogs
// @Security     BearerAuth
// @Param        id   path  string  true  "Blog id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBlog(c.Request().Context(), ports.DeleteBlogInput{
		BlogID:    c.Param("id"),
		Requester: user,
	}); err != nil {
		return err
	}

	metrics.BlogsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/blogs/stats.
//
// @Summary      Like statistics over all blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /api/blogs/stats [get]
func (h *BlogHandler) Stats(c echo.Context) error {
	st, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	resp := statsResponse{TotalLikes: st.TotalLikes}
	if st.Favorite != nil {
		resp.Favorite = &favoriteResponse{
			Title:  st.Favorite.Title,
			Author: st.Favorite.Author,
			Likes:  st.Favorite.Likes,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
