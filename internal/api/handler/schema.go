package handler

import "github.com/bloglist/blog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createBlogRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url"    validate:"required"`
	Likes  *int   `json:"likes"  validate:"omitempty,min=0"`
}

type updateBlogRequest struct {
	Likes *int `json:"likes" validate:"required,min=0"`
}

// --- Response types ---
// These are separate from domain types so the JSON contract is not coupled
// to internal changes.

type creatorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type blogResponse struct {
	ID     string           `json:"id"`
	Title  string           `json:"title"`
	Author string           `json:"author"`
	URL    string           `json:"url"`
	Likes  int              `json:"likes"`
	User   *creatorResponse `json:"user,omitempty"`
}

type ownedBlogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type userResponse struct {
	ID       string              `json:"id"`
	Username string              `json:"username"`
	Name     string              `json:"name,omitempty"`
	Blogs    []ownedBlogResponse `json:"blogs"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type favoriteResponse struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type statsResponse struct {
	TotalLikes int               `json:"total_likes"`
	Favorite   *favoriteResponse `json:"favorite"`
}

// --- Mappers ---

func toBlogResponse(b *domain.Blog) blogResponse {
	resp := blogResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
	if b.Creator != nil {
		resp.User = &creatorResponse{ID: b.Creator.ID, Username: b.Creator.Username, Name: b.Creator.Name}
	}
	return resp
}

func toBlogListResponse(blogs []*domain.Blog) []blogResponse {
	out := make([]blogResponse, len(blogs))
	for i, b := range blogs {
		out[i] = toBlogResponse(b)
	}
	return out
}

func toUserResponse(u *domain.User, blogs []*domain.Blog) userResponse {
	owned := make([]ownedBlogResponse, len(blogs))
	for i, b := range blogs {
		owned[i] = ownedBlogResponse{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL}
	}
	return userResponse{ID: u.ID, Username: u.Username, Name: u.Name, Blogs: owned}
}
