package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"office-log-backend/config"
	"office-log-backend/internal/api"
	"office-log-backend/internal/auth"
	"office-log-backend/internal/db"
	"office-log-backend/internal/model"
	"office-log-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "office-log-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	if err := seedBootstrapAdmin(context.Background(), appStore, cfg, logger); err != nil {
		logger.Fatalf("failed to seed bootstrap admin: %v", err)
	}

	// Initialize router
	router := api.NewRouter(appStore, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// seedBootstrapAdmin creates the configured admin login when the users
// table is empty, so a fresh deployment is reachable.
func seedBootstrapAdmin(ctx context.Context, s store.Store, cfg *config.Config, logger *log.Logger) error {
	admin := cfg.Auth.BootstrapAdmin
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	n, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	logger.Printf("users table is empty; creating bootstrap admin %q", admin.Username)
	return s.CreateUser(ctx, &model.User{Username: admin.Username, Password: hash})
}
