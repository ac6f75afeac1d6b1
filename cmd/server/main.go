package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusbay/backend/internal/api"
	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/config"
	"github.com/campusbay/backend/internal/repository/postgres"
	"github.com/campusbay/backend/internal/service"
	"github.com/campusbay/backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Session store: Redis when configured, process memory otherwise.
	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to session store: %v", err)
		}
		store = redisStore
		log.Println("Using Redis session store")
	} else {
		store = session.NewMemoryStore()
		log.Println("Using in-memory session store; sessions are lost on restart")
	}
	sessions := session.NewManager(store, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Initialize upload storage
	assetManager, err := assets.NewManager(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to initialize upload storage: %v", err)
	}

	// Initialize services
	services := service.NewServices(repos, assetManager, cfg)

	// Initialize router
	router := api.NewRouter(services, sessions, assetManager, repos, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
