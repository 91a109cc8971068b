package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloglist/blog-api/internal/pkg/config"
	"github.com/bloglist/blog-api/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		Env:         "test",
		StoreDriver: config.StoreMemory,
		Auth:        config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: 4},
	}
}

func initLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger.Reset()
	t.Cleanup(logger.Reset)
	var buf bytes.Buffer
	logger.Init(logger.Options{Level: "info", Output: &buf})
	return &buf
}

func TestNew_MemoryStore(t *testing.T) {
	buf := initLogger(t)

	a, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close(context.Background())

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "in-memory store", "app logs through the process logger")
}

func TestNew_RejectsEmptySecret(t *testing.T) {
	initLogger(t)
	cfg := memoryConfig()
	cfg.Auth.JWTSecret = ""

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	initLogger(t)
	cfg := memoryConfig()
	cfg.StoreDriver = "sqlite"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
