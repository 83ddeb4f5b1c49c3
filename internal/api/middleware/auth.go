package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const userKey contextKey = "user"

// AccessTokenCookie is the cookie the access token travels in; the
// Authorization header is the fallback for non-browser clients.
const AccessTokenCookie = "accessToken"

// Auth gates protected routes: extract the access token, verify it, resolve
// the user it names, and attach that user to the request context. Every
// rejection is a 401 with a readable reason.
func Auth(authService *service.AuthService, logger *zap.Logger, reject func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	log := logger.Named("middleware.auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				reject(w, domain.Unauthorized("unauthorized request"))
				return
			}

			userID, err := authService.VerifyAccessToken(token)
			if err != nil {
				log.Debug("token verification failed", zap.Error(err))
				reject(w, domain.Unauthorized(err.Error()))
				return
			}

			user, err := authService.ResolveUser(r.Context(), userID)
			if err != nil {
				reject(w, domain.Unauthorized("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// OptionalAuth attaches the user when a valid access token is present and
// passes the request through untouched otherwise. Used on public routes
// whose behavior is enriched for signed-in viewers.
func OptionalAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				if userID, err := authService.VerifyAccessToken(token); err == nil {
					if user, err := authService.ResolveUser(r.Context(), userID); err == nil {
						r = r.WithContext(withUser(r.Context(), user))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated user attached by Auth or OptionalAuth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
