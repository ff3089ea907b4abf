package home

import (
	"fmt"
	"html"
	"net/http"

	"github.com/tasknest/TN-Backend/internal/middleware"
	"github.com/tasknest/TN-Backend/internal/session"
)

// RegisterPath is where unauthenticated visitors land (the registration view
// of the frontend).
const RegisterPath = "/create-user"

// Handler resolves the identity cookie for the home page. Unlike the API
// middleware it redirects instead of answering 401: no cookie, an
// undecodable cookie and a cookie pointing at a deleted user all land on the
// registration view.
func Handler(fetcher middleware.UserFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := session.Read(r)
		if err != nil {
			http.Redirect(w, r, RegisterPath, http.StatusFound)
			return
		}

		user, err := fetcher.FindUserByEmail(claims.Email)
		if err != nil {
			http.Redirect(w, r, RegisterPath, http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<h1>Welcome to the Task Manager, %s!</h1>\n", html.EscapeString(user.Name))
	}
}
