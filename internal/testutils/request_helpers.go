package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/models"
)

// CreateAuthenticatedRequest builds a request whose context carries an
// authenticated owner scope, as the session middleware would after
// validating a bearer token.
func CreateAuthenticatedRequest(method, target string, body io.Reader, owner string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	claims := &models.Claims{OwnerID: owner, Email: "test@example.com"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	ctx = context.WithValue(ctx, middleware.OwnerContextKey, owner)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// CreateGuestRequest builds a request with a guest owner scope only.
func CreateGuestRequest(method, target string, body io.Reader, owner string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.OwnerContextKey, owner)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
