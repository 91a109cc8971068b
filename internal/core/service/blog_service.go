package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/auth"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
	"github.com/bloglist/blog-api/internal/core/stats"
)

type BlogService struct {
	repo   ports.BlogRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewBlogService returns a BlogService. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewBlogService(repo ports.BlogRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, idem: idem, logger: logger}
}

// CreateBlog stores a new blog owned by input.Creator. If the same creator
// already used input.IdempotencyKey, the blog created that time is returned.
// The key is reserved before the blog is stored, so a concurrent retry gets
// domain.ErrIdempotencyInFlight instead of a second blog.
func (s *BlogService) CreateBlog(ctx context.Context, input ports.CreateBlogInput) (*domain.Blog, error) {
	if input.Creator == nil || input.Creator.ID == "" {
		return nil, domain.ErrMissingToken
	}

	blog := &domain.Blog{
		Title:     input.Title,
		Author:    input.Author,
		URL:       input.URL,
		CreatorID: input.Creator.ID,
		CreatedAt: time.Now().UTC(),
	}
	if input.Likes != nil {
		blog.Likes = *input.Likes
	}
	if err := blog.Validate(); err != nil {
		return nil, err
	}

	claimed := false
	if input.IdempotencyKey != "" && s.idem != nil {
		existing, reserved, err := s.reserve(ctx, input)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		claimed = reserved
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		if claimed {
			s.release(ctx, input)
		}
		s.logger.Error().Err(err).Msg("failed to create blog")
		return nil, fmt.Errorf("create blog: %w", err)
	}
	metrics.BlogsCreatedTotal.Inc()

	ref := input.Creator.Ref()
	created.Creator = &ref

	if claimed {
		if err := s.idem.Complete(ctx, input.Creator.ID, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("blog_id", created.ID).Str("user_id", input.Creator.ID).Msg("blog created")
	return created, nil
}

// reserve claims the request's idempotency key. It returns the blog an
// earlier request with the same key produced, if any, and whether this
// request now holds the key. Store failures are logged and the create
// proceeds without a claim.
func (s *BlogService) reserve(ctx context.Context, input ports.CreateBlogInput) (*domain.Blog, bool, error) {
	blogID, reserved, err := s.idem.Reserve(ctx, input.Creator.ID, input.IdempotencyKey)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency reserve failed, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if blogID == "" {
		return nil, false, domain.ErrIdempotencyInFlight
	}

	existing, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		// the original blog was deleted since; this request takes the key over
		return nil, true, nil
	}
	s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("blog_id", blogID).Msg("idempotent replay")
	return existing, false, nil
}

func (s *BlogService) release(ctx context.Context, input ports.CreateBlogInput) {
	if err := s.idem.Release(ctx, input.Creator.ID, input.IdempotencyKey); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
	}
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (*domain.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) ListBlogs(ctx context.Context) ([]*domain.Blog, error) {
	return s.repo.List(ctx)
}

// UpdateLikes sets the like count of a blog. Any caller may like a blog, so
// no ownership check is applied here.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes int) (*domain.Blog, error) {
	if likes < 0 {
		return nil, domain.NewValidationError("likes must not be negative")
	}
	return s.repo.UpdateLikes(ctx, id, likes)
}

// DeleteBlog removes a blog after confirming the requester created it.
func (s *BlogService) DeleteBlog(ctx context.Context, input ports.DeleteBlogInput) error {
	blog, err := s.repo.FindByID(ctx, input.BlogID)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(input.Requester, blog); err != nil {
		requester := ""
		if input.Requester != nil {
			requester = input.Requester.ID
		}
		s.logger.Warn().Str("blog_id", blog.ID).Str("user_id", requester).Msg("delete refused: not the creator")
		return err
	}

	if err := s.repo.Delete(ctx, blog.ID); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return err
		}
		return fmt.Errorf("delete blog: %w", err)
	}

	s.logger.Info().Str("blog_id", blog.ID).Str("user_id", input.Requester.ID).Msg("blog deleted")
	return nil
}

// Stats aggregates likes over every stored blog.
func (s *BlogService) Stats(ctx context.Context) (*ports.BlogStats, error) {
	blogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("blog stats: %w", err)
	}

	out := &ports.BlogStats{TotalLikes: stats.TotalLikes(blogs)}
	if fav, ok := stats.FavoriteBlog(blogs); ok {
		out.Favorite = &fav
	}
	return out, nil
}
