package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
	"github.com/bloglist/blog-api/internal/core/stats"
)

var root = &domain.User{ID: "64b7f0c2a1b2c3d4e5f60718", Username: "root", Name: "Superuser"}

func TestBlogHandler_Create_PassesCreatorAndKey(t *testing.T) {
	svc := &stubBlogService{blog: &domain.Blog{
		ID: "b1", Title: "Go", URL: "https://go.dev", CreatorID: root.ID,
		Creator: &domain.UserRef{ID: root.ID, Username: "root"},
	}}
	h := NewBlogHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/blogs", `{"title":"Go","author":"Rob","url":"https://go.dev"}`)
	c.Request().Header.Set("Idempotency-Key", "abc")
	c.Set(middleware.UserContextKey, root)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.created.Creator != root {
		t.Errorf("creator not forwarded")
	}
	if svc.created.IdempotencyKey != "abc" {
		t.Errorf("expected idempotency key abc, got %q", svc.created.IdempotencyKey)
	}
	if svc.created.Likes != nil {
		t.Errorf("expected omitted likes to stay nil")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "root" {
		t.Errorf("expected creator projection, got %v", body["user"])
	}
}

func TestBlogHandler_Create_WithoutUser(t *testing.T) {
	svc := &stubBlogService{}
	c, _ := newJSONContext(http.MethodPost, "/api/blogs", `{"title":"Go","url":"https://go.dev"}`)

	err := NewBlogHandler(svc).Create(c)
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if svc.createCnt != 0 {
		t.Errorf("service must not be called")
	}
}

func TestBlogHandler_Create_MissingURL(t *testing.T) {
	svc := &stubBlogService{}
	c, _ := newJSONContext(http.MethodPost, "/api/blogs", `{"title":"Go"}`)
	c.Set(middleware.UserContextKey, root)

	err := NewBlogHandler(svc).Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "url is required") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if svc.createCnt != 0 {
		t.Errorf("service must not be called")
	}
}

func TestBlogHandler_Update(t *testing.T) {
	svc := &stubBlogService{blog: &domain.Blog{ID: "b1", Title: "Go", URL: "u", Likes: 7}}
	c, rec := newJSONContext(http.MethodPut, "/api/blogs/b1", `{"likes":7}`)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := NewBlogHandler(svc).Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.likesID != "b1" || svc.likes != 7 {
		t.Errorf("unexpected call: id=%q likes=%d", svc.likesID, svc.likes)
	}
}

func TestBlogHandler_Update_RejectsNegativeLikes(t *testing.T) {
	svc := &stubBlogService{}
	c, _ := newJSONContext(http.MethodPut, "/api/blogs/b1", `{"likes":-1}`)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := NewBlogHandler(svc).Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBlogHandler_Update_ZeroLikesAllowed(t *testing.T) {
	svc := &stubBlogService{blog: &domain.Blog{ID: "b1"}}
	c, _ := newJSONContext(http.MethodPut, "/api/blogs/b1", `{"likes":0}`)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := NewBlogHandler(svc).Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBlogHandler_Delete(t *testing.T) {
	svc := &stubBlogService{}
	c, rec := newJSONContext(http.MethodDelete, "/api/blogs/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set(middleware.UserContextKey, root)

	if err := NewBlogHandler(svc).Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.deleted.BlogID != "b1" || svc.deleted.Requester != root {
		t.Errorf("unexpected delete input: %+v", svc.deleted)
	}
}

func TestBlogHandler_Delete_Forbidden(t *testing.T) {
	svc := &stubBlogService{err: domain.ErrForbidden}
	c, _ := newJSONContext(http.MethodDelete, "/api/blogs/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	c.Set(middleware.UserContextKey, root)

	if err := NewBlogHandler(svc).Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBlogHandler_Stats(t *testing.T) {
	tests := []struct {
		name  string
		stats *ports.BlogStats
		want  string
	}{
		{
			name:  "no blogs",
			stats: &ports.BlogStats{},
			want:  `{"total_likes":0,"favorite":null}`,
		},
		{
			name: "with favorite",
			stats: &ports.BlogStats{
				TotalLikes: 12,
				Favorite:   &stats.Favorite{Title: "Go", Author: "Rob", Likes: 12},
			},
			want: `{"total_likes":12,"favorite":{"title":"Go","author":"Rob","likes":12}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, "/api/blogs/stats", "")
			if err := NewBlogHandler(&stubBlogService{stats: tt.stats}).Stats(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBlogHandler_List(t *testing.T) {
	svc := &stubBlogService{blogs: []*domain.Blog{
		{ID: "b1", Title: "A", URL: "u1"},
		{ID: "b2", Title: "B", URL: "u2", Likes: 3},
	}}
	c, rec := newJSONContext(http.MethodGet, "/api/blogs", "")

	if err := NewBlogHandler(svc).List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []blogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[1].Likes != 3 {
		t.Errorf("unexpected body: %+v", out)
	}
}
