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

	"separator-tco-backend/config"
	"separator-tco-backend/internal/api"
	"separator-tco-backend/internal/catalog"
	"separator-tco-backend/internal/db"
	"separator-tco-backend/internal/refresh"
	"separator-tco-backend/internal/store"
	"separator-tco-backend/internal/tco"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "tco-backend ", log.LstdFlags)

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

	rates, err := cfg.Rates()
	if err != nil {
		logger.Fatalf("invalid engine configuration: %v", err)
	}
	calc, err := tco.NewCalculator(rates)
	if err != nil {
		logger.Fatalf("failed to create calculator: %v", err)
	}

	specs, err := catalog.Open(context.Background(), cfg.Catalog.Source())
	if err != nil {
		logger.Fatalf("failed to load catalog: %v", err)
	}
	logger.Printf("catalog loaded with %d entries", len(specs))

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	// Keep project shortlists fresh in the background
	shortlists := refresh.NewService(cfg.Refresh, appStore, specs, cfg.Heuristics(), cfg.Engine.ShortlistSize)
	go shortlists.Run(ctx)

	// Initialize router
	handler := api.NewHandler(appStore, shortlists, calc, specs, tco.DefaultAssumptions())
	router := api.NewRouter(ctx, handler, cfg.Server)
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
	cancel()

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
