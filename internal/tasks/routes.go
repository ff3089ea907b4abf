package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tasknest/TN-Backend/internal/middleware"
)

func SetupRoutes(fetcher middleware.UserFetcher) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware(fetcher))

	r.Post("/", CreateTaskHandler)
	r.Get("/", ListTasksHandler)
	r.Get("/{id}", GetTaskHandler)
	r.Put("/{id}", UpdateTaskHandler)
	r.Delete("/{id}", DeleteTaskHandler)

	return r
}
