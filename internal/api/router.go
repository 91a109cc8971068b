package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bloglist/blog-api/docs"
	"github.com/bloglist/blog-api/internal/api/handler"
	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Blogs  ports.BlogService
	Guard  middleware.Authenticator
	Checks map[string]handler.CheckFunc
	Logger zerolog.Logger

	// DisableMetrics skips the Prometheus middleware and /metrics route.
	DisableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	if !d.DisableMetrics {
		e.Use(echoprometheus.NewMiddleware("bloglist"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	userHandler := handler.NewUserHandler(d.Users)
	loginHandler := handler.NewLoginHandler(d.Auth)
	blogHandler := handler.NewBlogHandler(d.Blogs)
	healthHandler := handler.NewHealthHandler(d.Checks)
	requireUser := middleware.Authenticate(d.Guard)

	// --- API routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/users", userHandler.Register)
	apiGroup.GET("/users", userHandler.List)
	apiGroup.POST("/login", loginHandler.Login)

	blogs := apiGroup.Group("/blogs")
	blogs.GET("", blogHandler.List)
	blogs.GET("/stats", blogHandler.Stats)
	blogs.GET("/:id", blogHandler.Get)
	blogs.POST("", blogHandler.Create, requireUser)
	blogs.PUT("/:id", blogHandler.Update)
	blogs.DELETE("/:id", blogHandler.Delete, requireUser)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness
	e.GET("/health/ready", healthHandler.Readiness) // readiness

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
