package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/tasknest/TN-Backend/internal/config"
	"github.com/tasknest/TN-Backend/internal/db"
	"github.com/tasknest/TN-Backend/internal/home"
	"github.com/tasknest/TN-Backend/internal/session"
	"github.com/tasknest/TN-Backend/internal/tasks"
	"github.com/tasknest/TN-Backend/internal/users"
)

func main() {
	_ = godotenv.Load(".env.local")
	cfg := config.Load()

	db.Connect(cfg.DatabaseURL)
	users.Init()
	tasks.Init()

	session.MaxAge = cfg.Session.MaxAgeSeconds
	userFetcher := users.UserInfo{}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout()))

	r.Get("/", home.Handler(userFetcher))
	r.Route("/api", func(api chi.Router) {
		api.Mount("/tasks", tasks.SetupRoutes(userFetcher))
		api.Mount("/", users.SetupRoutes())
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout(),
		WriteTimeout: cfg.RequestTimeout(),
	}

	log.Println("Server listening on port :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
