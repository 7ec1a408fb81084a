package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whamhub/backend/config"
	"github.com/whamhub/backend/internal/api"
	"github.com/whamhub/backend/internal/database"
	"github.com/whamhub/backend/internal/middleware"
	"github.com/whamhub/backend/internal/router"
	"github.com/whamhub/backend/internal/server"
	"github.com/whamhub/backend/internal/service"
	"github.com/whamhub/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	storage, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	// Every collaborator client is built here once and injected; nothing
	// reads process-wide state after this point.
	sessions := service.NewSessionService(cfg.AuthJWTSecret)
	avatars := service.NewAvatarStore(storage)
	profiles := service.NewProfileService(store.NewProfileStore(db), avatars)

	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     10,
			KeyPrefix: "ratelimit:avatar",
		})
	}

	engine := router.SetupRouter(
		api.NewProfileHandler(profiles),
		api.NewMetaHandler(cfg),
		sessions,
		limiter,
	)
	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
