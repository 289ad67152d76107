package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/korwin-dev/citelinks-be/internal/models"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

type contextKey string

// UserKey is the context key under which the middleware stores the
// authenticated user.
const UserKey = contextKey("authUser")

// TokenFromRequest extracts the opaque token credential from the request.
// Both the "Bearer" and the legacy "Token" authorization schemes are
// accepted, with a cookie fallback. Returns "" when no credential is
// present.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	for _, scheme := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(authHeader, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(authHeader, scheme))
		}
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

// UserFromRequest resolves the request's token credential to a user.
// Returns nil when the request is unauthenticated or the token is unknown.
func UserFromRequest(r *http.Request, tokens services.TokenServiceProvider) *models.User {
	key := TokenFromRequest(r)
	if key == "" {
		return nil
	}
	user, err := tokens.UserForToken(key)
	if err != nil {
		return nil
	}
	return &user
}

// Middleware protects routes by requiring a valid token. The resolved user
// is passed down via the request context.
func Middleware(tokens services.TokenServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := TokenFromRequest(r)
			if key == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			user, err := tokens.UserForToken(key)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user the middleware stored in ctx, if any.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserKey).(models.User)
	return user, ok
}
