package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabcerqueira/natours/internal/api/shared"
	"github.com/gabcerqueira/natours/internal/domain"
	"github.com/gabcerqueira/natours/internal/service/auth"
	"github.com/gabcerqueira/natours/internal/store"
)

// jwtCookieName is the cookie mirroring the bearer token.
const jwtCookieName = "jwt"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the bearer token, resolves it to an active user,
// rejects tokens issued before the user's last password change, and
// attaches the caller identity to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"You are not logged in! Please log in to get access")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"Your token has expired! Please log in again")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"This token is invalid, please log in again")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError,
					"Authentication error")
			}
			return
		}

		user, err := m.userStore.FindByID(r.Context(), claims.UserID, false)
		if err != nil {
			if store.IsNotFoundError(err) || errors.Is(err, store.ErrInvalidID) {
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"The user belonging to this token does no longer exist")
				return
			}
			slog.Error("failed to load user for token", "error", err, "user_id", claims.UserID)
			shared.RespondWithError(w, r, http.StatusInternalServerError,
				"Authentication error")
			return
		}

		if user.PasswordChangedAfter(claims.IssuedAt) {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"User recently changed password! Please log in again")
			return
		}

		ctx := context.WithValue(r.Context(), shared.CurrentUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route to the given roles. Must run after
// Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetCurrentUser(r)
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"You are not logged in! Please log in to get access")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				shared.RespondWithError(w, r, http.StatusForbidden,
					"You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCurrentUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if it was found.
func GetCurrentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.CurrentUserContextKey).(*domain.User)
	return user, ok
}

// extractToken reads the bearer token from the Authorization header, with
// the jwt cookie as fallback.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", auth.ErrMissingToken
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(jwtCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", auth.ErrMissingToken
}
