package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

type stubUserService struct {
	registered ports.RegisterInput
	registerFn func(ports.RegisterInput) (*domain.User, error)
	list       []ports.UserWithBlogs
}

func (s *stubUserService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	s.registered = in
	return s.registerFn(in)
}

func (s *stubUserService) ListUsers(context.Context) ([]ports.UserWithBlogs, error) {
	return s.list, nil
}

type stubAuthService struct {
	result *ports.LoginResult
	err    error
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return s.result, s.err
}

type stubBlogService struct {
	created   ports.CreateBlogInput
	deleted   ports.DeleteBlogInput
	likesID   string
	likes     int
	blog      *domain.Blog
	blogs     []*domain.Blog
	stats     *ports.BlogStats
	err       error
	createCnt int
}

func (s *stubBlogService) CreateBlog(_ context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	s.createCnt++
	s.created = in
	return s.blog, s.err
}

func (s *stubBlogService) GetBlog(context.Context, string) (*domain.Blog, error) {
	return s.blog, s.err
}

func (s *stubBlogService) ListBlogs(context.Context) ([]*domain.Blog, error) {
	return s.blogs, s.err
}

func (s *stubBlogService) UpdateLikes(_ context.Context, id string, likes int) (*domain.Blog, error) {
	s.likesID, s.likes = id, likes
	return s.blog, s.err
}

func (s *stubBlogService) DeleteBlog(_ context.Context, in ports.DeleteBlogInput) error {
	s.deleted = in
	return s.err
}

func (s *stubBlogService) Stats(context.Context) (*ports.BlogStats, error) {
	return s.stats, s.err
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
