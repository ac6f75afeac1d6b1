package api

import (
	"net/http"

	"github.com/campusbay/backend/internal/api/handlers"
	"github.com/campusbay/backend/internal/api/middleware"
	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/config"
	"github.com/campusbay/backend/internal/repository"
	"github.com/campusbay/backend/internal/service"
	"github.com/campusbay/backend/internal/session"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

func NewRouter(services *service.Services, sessions *session.Manager, assetManager *assets.Manager, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	generalLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, sessions, cfg)
	productHandler := handlers.NewProductHandler(services.Product)
	cartHandler := handlers.NewCartHandler(services.Cart)
	seedHandler := handlers.NewSeedHandler(repos, cfg)

	banner := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"CampusBay Backend API","version":"1.0.0","status":"running"}`))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", banner)

	// Uploaded listing images, read-only
	fileServer := http.StripPrefix(assets.URLPrefix+"/", http.FileServer(http.Dir(assetManager.Dir())))
	r.Get(assets.URLPrefix+"/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(generalLimiter.Limit)

		r.Get("/", banner)

		// Auth routes with stricter rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Limit)

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(sessions))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Product routes
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(sessions))
				r.Post("/", productHandler.Create)
				r.Get("/my/listings", productHandler.ListMine)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
				r.Patch("/{id}/sold", productHandler.MarkSold)
			})

			r.Get("/{id}", productHandler.Get)
		})

		// Cart routes, ungated: the caller-supplied user id is trusted
		r.Route("/cart", func(r chi.Router) {
			r.Get("/{userId}", cartHandler.List)
			r.Post("/", cartHandler.Add)
			r.Delete("/{id}", cartHandler.Remove)
		})

		// Development-only seed data
		r.Get("/seed", seedHandler.Seed)
	})

	return r
}
