package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/insuvit/storefront/internal/errors"
	"github.com/insuvit/storefront/internal/models"
	"github.com/insuvit/storefront/internal/utils/response"
)

type sessionContextKey string

const (
	OwnerContextKey  = sessionContextKey("owner")
	ClaimsContextKey = sessionContextKey("claims")
)

// SessionIDHeader carries the guest session scope. When a request arrives
// without a bearer token or a session id, one is generated and echoed back
// so the client can keep its cart across requests.
const SessionIDHeader = "X-Session-ID"

type SessionMiddleware struct {
	jwtKey []byte
}

func NewSessionMiddleware(jwtKey []byte) *SessionMiddleware {
	return &SessionMiddleware{jwtKey: jwtKey}
}

// Resolve determines the owner scope for the request: the JWT's owner id
// for authenticated clients, the X-Session-ID header for guests, or a
// fresh uuid otherwise. A malformed or expired token degrades to guest
// handling rather than rejecting the request.
func (m *SessionMiddleware) Resolve(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())
		ctx := r.Context()

		if claims := m.parseToken(r, logger); claims != nil {

			ctx = context.WithValue(ctx, ClaimsContextKey, claims)
			ctx = context.WithValue(ctx, OwnerContextKey, claims.OwnerID)
			ctx = context.WithValue(ctx, LoggerKey, logger.With(slog.String("owner", claims.OwnerID)))

			next.ServeHTTP(w, r.WithContext(ctx))

			return
		}

		owner := r.Header.Get(SessionIDHeader)
		if owner == "" {
			owner = uuid.NewString()
		}

		w.Header().Set(SessionIDHeader, owner)

		ctx = context.WithValue(ctx, OwnerContextKey, owner)
		ctx = context.WithValue(ctx, LoggerKey, logger.With(slog.String("owner", owner)))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAuth rejects requests whose scope is not authenticated. Must run
// after Resolve.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := ClaimsFromContext(r.Context()); !ok {
			LoggerFromContext(r.Context()).Warn("Unauthenticated request to protected endpoint")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		next.ServeHTTP(w, r)
	}
}

func (m *SessionMiddleware) parseToken(r *http.Request, logger *slog.Logger) *models.Claims {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		logger.Warn("Invalid authorization header format")

		return nil
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}

		return m.jwtKey, nil
	})
	if err != nil || !token.Valid {
		logger.Warn("JWT parsing failed, treating request as guest")

		return nil
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		logger.Warn("Expired token, treating request as guest")

		return nil
	}

	return claims
}

func OwnerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(OwnerContextKey).(string); ok {
		return owner
	}

	return ""
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*models.Claims)

	return claims, ok
}
