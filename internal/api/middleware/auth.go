package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/pkazakov/accounts-service/internal/api/respond"
	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth reads the access token cookie, authorizes it against the required
// role set and stores the resolved user on the request context. The check
// order is fixed: token validity (401), subject existence (404), role
// membership (403).
func Auth(authService *service.AuthService, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.AccessCookieName)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
				return
			}

			user, err := authService.Authorize(r.Context(), cookie.Value, roles...)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrWrongTokenType):
					respond.Error(w, http.StatusUnauthorized, "Access denied. Access token is invalid.")
				case errors.Is(err, domain.ErrUserNotFound):
					respond.Error(w, http.StatusNotFound, "User is no longer valid.")
				case errors.Is(err, domain.ErrForbidden):
					respond.Error(w, http.StatusForbidden, "Insufficient permissions for this route.")
				default:
					respond.ServerError(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
