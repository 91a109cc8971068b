// Package app assembles the blog list API from its configuration and runs
// the HTTP server until the process is told to stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/bloglist/blog-api/internal/api"
	"github.com/bloglist/blog-api/internal/api/handler"
	"github.com/bloglist/blog-api/internal/core/auth"
	"github.com/bloglist/blog-api/internal/core/ports"
	"github.com/bloglist/blog-api/internal/core/service"
	"github.com/bloglist/blog-api/internal/infrastructure/db/memory"
	"github.com/bloglist/blog-api/internal/infrastructure/db/mongo"
	"github.com/bloglist/blog-api/internal/infrastructure/db/redis"
	"github.com/bloglist/blog-api/internal/pkg/config"
	"github.com/bloglist/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *echo.Echo

	mongoClient *mongodriver.Client
	redisClient *goredis.Client
}

// New connects the configured stores and wires services and routes. It logs
// through the process logger, so logger.Init must have run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Get()
	a := &App{cfg: cfg, log: log}

	var (
		users  ports.UserRepository
		blogs  ports.BlogRepository
		idem   ports.IdempotencyStore
		checks = map[string]handler.CheckFunc{}
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New()
		users, blogs = store.Users(), store.Blogs()
		log.Warn().Msg("using in-memory store; data is lost on exit")

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.mongoClient = client

		repos, err := mongo.NewRepositories(ctx, db)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("app: %w", err)
		}
		users, blogs = repos.Users, repos.Blogs
		checks["mongodb"] = func(ctx context.Context) error { return mongo.Ping(ctx, db) }

		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("app: %w", err)
		}
		a.redisClient = rdb
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }

	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.StoreDriver)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("app: %w", err)
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	a.router = api.NewRouter(api.Deps{
		Users:  service.NewUserService(users, blogs, hasher, log),
		Auth:   service.NewAuthService(users, hasher, tokens, log),
		Blogs:  service.NewBlogService(blogs, idem, log),
		Guard:  auth.NewGuard(tokens, users, log),
		Checks: checks,
		Logger: log,
	})

	return a, nil
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("store", a.cfg.StoreDriver).Msg("starting server")
		if err := a.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.router.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

// Close releases store connections. It is safe to call on a partially
// built App.
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
