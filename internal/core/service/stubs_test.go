package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	listErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubBlogRepo struct {
	blogs     []*domain.Blog
	nextID    int
	createErr error
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{}
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	clone := *b
	return &clone
}

func (r *stubBlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	copy := cloneBlog(blog)
	copy.ID = fmt.Sprintf("blog-%d", r.nextID)
	r.blogs = append(r.blogs, cloneBlog(copy))
	return copy, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.ID == id {
			return cloneBlog(b), nil
		}
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) FindByCreator(_ context.Context, userID string) ([]*domain.Blog, error) {
	var out []*domain.Blog
	for _, b := range r.blogs {
		if b.CreatorID == userID {
			out = append(out, cloneBlog(b))
		}
	}
	return out, nil
}

func (r *stubBlogRepo) List(_ context.Context) ([]*domain.Blog, error) {
	out := make([]*domain.Blog, 0, len(r.blogs))
	for _, b := range r.blogs {
		out = append(out, cloneBlog(b))
	}
	return out, nil
}

func (r *stubBlogRepo) UpdateLikes(_ context.Context, id string, likes int) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.ID == id {
			b.Likes = likes
			return cloneBlog(b), nil
		}
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	for i, b := range r.blogs {
		if b.ID == id {
			r.blogs = append(r.blogs[:i], r.blogs[i+1:]...)
			return nil
		}
	}
	return domain.ErrBlogNotFound
}

const stubPending = "pending"

type stubIdempotencyStore struct {
	mu         sync.Mutex
	keys       map[string]string
	reserveErr error
	released   int
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]string)}
}

func (s *stubIdempotencyStore) Reserve(_ context.Context, userID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	k := userID + "/" + key
	if v, ok := s.keys[k]; ok {
		if v == stubPending {
			return "", false, nil
		}
		return v, false, nil
	}
	s.keys[k] = stubPending
	return "", true, nil
}

func (s *stubIdempotencyStore) Complete(_ context.Context, userID, key, blogID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[userID+"/"+key] = blogID
	return nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, userID+"/"+key)
	s.released++
	return nil
}

var (
	_ ports.UserRepository   = (*stubUserRepo)(nil)
	_ ports.BlogRepository   = (*stubBlogRepo)(nil)
	_ ports.IdempotencyStore = (*stubIdempotencyStore)(nil)
)
