package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"jobtrackr/internal/logger"
)

// Reset tokens are carried as a path parameter, so the request log must
// record the route template rather than the concrete URL.
func TestLoggingMiddleware_PathParamsNotLogged(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())
	router.POST("/auth/reset-password/:token", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	const rawToken = "a3f1c9d2e48b76a0f5e3d1c2b4a69870a3f1c9d2e48b76a0f5e3d1c2b4a69870"
	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password/"+rawToken, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := observed.All()
	if len(entries) < 2 {
		t.Fatalf("observed %d log entries, want at least 2", len(entries))
	}

	for _, entry := range entries {
		for _, field := range entry.Context {
			if strings.Contains(field.String, rawToken) {
				t.Errorf("log entry %q field %q contains the raw reset token: %s",
					entry.Message, field.Key, field.String)
			}
		}
	}

	path, ok := entries[0].ContextMap()["path"].(string)
	if !ok {
		t.Fatal("first entry has no path field")
	}
	if path != "/auth/reset-password/:token" {
		t.Errorf("logged path = %q, want the route template", path)
	}
}

// Unmatched requests have no template; the concrete path is still logged.
func TestLoggingMiddleware_UnmatchedPathLoggedVerbatim(t *testing.T) {
	core, observed := observer.New(zap.InfoLevel)
	previous := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = previous })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	entries := observed.All()
	if len(entries) == 0 {
		t.Fatal("no log entries observed")
	}
	if path := entries[0].ContextMap()["path"]; path != "/no-such-route" {
		t.Errorf("logged path = %v, want /no-such-route", path)
	}
}
