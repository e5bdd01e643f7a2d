package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTKey = "test-key"

func signToken(t *testing.T, owner string, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{
		OwnerID: owner,
		Email:   "shopper@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTKey))
	require.NoError(t, err)

	return token
}

func TestSessionMiddleware_Resolve(t *testing.T) {
	m := middleware.NewSessionMiddleware([]byte(testJWTKey))

	t.Run("generates a session id for anonymous requests", func(t *testing.T) {
		var gotOwner string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotOwner = middleware.OwnerFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
		rec := httptest.NewRecorder()

		m.Resolve(next).ServeHTTP(rec, req)

		require.NotEmpty(t, gotOwner)
		_, err := uuid.Parse(gotOwner)
		assert.NoError(t, err)
		assert.Equal(t, gotOwner, rec.Header().Get(middleware.SessionIDHeader))
	})

	t.Run("reuses the session id header", func(t *testing.T) {
		var gotOwner string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotOwner = middleware.OwnerFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
		req.Header.Set(middleware.SessionIDHeader, "sess-existing")
		rec := httptest.NewRecorder()

		m.Resolve(next).ServeHTTP(rec, req)

		assert.Equal(t, "sess-existing", gotOwner)
		assert.Equal(t, "sess-existing", rec.Header().Get(middleware.SessionIDHeader))
	})

	t.Run("extracts claims from a valid bearer token", func(t *testing.T) {
		var gotOwner string
		var gotClaims *models.Claims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotOwner = middleware.OwnerFromContext(r.Context())
			gotClaims, _ = middleware.ClaimsFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "owner-jwt", time.Now().Add(time.Hour)))
		rec := httptest.NewRecorder()

		m.Resolve(next).ServeHTTP(rec, req)

		assert.Equal(t, "owner-jwt", gotOwner)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "shopper@example.com", gotClaims.Email)
	})

	t.Run("treats an expired token as a guest", func(t *testing.T) {
		var gotClaims *models.Claims
		var claimsPresent bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotClaims, claimsPresent = middleware.ClaimsFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "owner-jwt", time.Now().Add(-time.Hour)))
		rec := httptest.NewRecorder()

		m.Resolve(next).ServeHTTP(rec, req)

		assert.False(t, claimsPresent)
		assert.Nil(t, gotClaims)
		assert.NotEmpty(t, rec.Header().Get(middleware.SessionIDHeader))
	})

	t.Run("treats garbage tokens as a guest", func(t *testing.T) {
		var called bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		m.Resolve(next).ServeHTTP(rec, req)

		assert.True(t, called)
		assert.NotEmpty(t, rec.Header().Get(middleware.SessionIDHeader))
	})
}

func TestSessionMiddleware_RequireAuth(t *testing.T) {
	m := middleware.NewSessionMiddleware([]byte(testJWTKey))

	t.Run("rejects guests", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		rec := httptest.NewRecorder()

		m.Resolve(m.RequireAuth(next)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		var called bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "owner-jwt", time.Now().Add(time.Hour)))
		rec := httptest.NewRecorder()

		m.Resolve(m.RequireAuth(next)).ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
