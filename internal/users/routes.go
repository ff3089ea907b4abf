package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tasknest/TN-Backend/internal/middleware"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	userFetcher := UserInfo{}

	r.Post("/users", RegisterHandler)
	r.Post("/login", LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(userFetcher))
		r.Patch("/users", UpdateUsernameHandler)
	})

	return r
}
