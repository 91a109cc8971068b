// Package memory is a process-local implementation of the store ports, used
// for local runs (STORE_DRIVER=memory) and end-to-end tests. IDs are Mongo
// ObjectID hex strings so malformed-id handling matches the Mongo driver.
package memory

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// Store holds users and blogs in insertion order.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	userOrder []string
	blogs     map[string]*domain.Blog
	blogOrder []string
}

func New() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		blogs: make(map[string]*domain.Blog),
	}
}

// Users returns the user repository view of s.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Blogs returns the blog repository view of s.
func (s *Store) Blogs() *BlogRepository { return &BlogRepository{s: s} }

func validID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	stored := *user
	stored.ID = primitive.NewObjectID().Hex()
	r.s.users[stored.ID] = &stored
	r.s.userOrder = append(r.s.userOrder, stored.ID)

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		u := *r.s.users[id]
		out = append(out, &u)
	}
	return out, nil
}

// Count reports the number of stored users.
func (r *UserRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users)
}

// BlogRepository implements ports.BlogRepository.
type BlogRepository struct {
	s *Store
}

// snapshot copies b and joins its creator. Caller holds the read lock.
func (r *BlogRepository) snapshot(b *domain.Blog) *domain.Blog {
	out := *b
	out.Creator = nil
	if u, ok := r.s.users[b.CreatorID]; ok {
		ref := u.Ref()
		out.Creator = &ref
	}
	return &out
}

func (r *BlogRepository) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	if !validID(blog.CreatorID) {
		return nil, domain.ErrMalformedID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *blog
	stored.ID = primitive.NewObjectID().Hex()
	stored.Creator = nil
	r.s.blogs[stored.ID] = &stored
	r.s.blogOrder = append(r.s.blogOrder, stored.ID)
	return r.snapshot(&stored), nil
}

func (r *BlogRepository) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	return r.snapshot(b), nil
}

func (r *BlogRepository) FindByCreator(_ context.Context, userID string) ([]*domain.Blog, error) {
	if !validID(userID) {
		return nil, domain.ErrMalformedID
	}
	return r.filter(func(b *domain.Blog) bool { return b.CreatorID == userID }), nil
}

func (r *BlogRepository) List(_ context.Context) ([]*domain.Blog, error) {
	return r.filter(func(*domain.Blog) bool { return true }), nil
}

func (r *BlogRepository) filter(keep func(*domain.Blog) bool) []*domain.Blog {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Blog, 0)
	for _, id := range r.s.blogOrder {
		if b := r.s.blogs[id]; keep(b) {
			out = append(out, r.snapshot(b))
		}
	}
	return out
}

func (r *BlogRepository) UpdateLikes(_ context.Context, id string, likes int) (*domain.Blog, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	b.Likes = likes
	return r.snapshot(b), nil
}

func (r *BlogRepository) Delete(_ context.Context, id string) error {
	if !validID(id) {
		return domain.ErrMalformedID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.s.blogs, id)
	r.s.blogOrder = slices.DeleteFunc(r.s.blogOrder, func(v string) bool { return v == id })
	return nil
}

// Count reports the number of stored blogs.
func (r *BlogRepository) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.blogs)
}
