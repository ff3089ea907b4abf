package middleware

import (
	"context"
	"net/http"

	"github.com/tasknest/TN-Backend/internal/session"
	"github.com/tasknest/TN-Backend/internal/utils"
)

// UserFetcher resolves a cookie email claim to a stored user. The identity
// cookie is unsigned, so this lookup is the only check a request gets: a
// cookie whose email has no User row is treated as no session at all.
type UserFetcher interface {
	FindUserByEmail(email string) (utils.UserData, error)
}

// SessionMiddleware decodes the identity cookie, resolves it to a user and
// injects the user ID into the request context. API routes behind it answer
// 401; the home page does its own resolution so it can redirect instead.
func SessionMiddleware(fetcher UserFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := session.Read(r)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			user, err := fetcher.FindUserByEmail(claims.Email)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextUserIDKey, user.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
