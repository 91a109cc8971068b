package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bloglist/blog-api/internal/app"
	"github.com/bloglist/blog-api/internal/pkg/config"
	"github.com/bloglist/blog-api/pkg/logger"
)

// @title        Blog List API
// @version      1.0
// @description  Users, sessions and owner-gated blog management.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
		Env:     cfg.Env,
	})

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	defer a.Close(context.Background())

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
