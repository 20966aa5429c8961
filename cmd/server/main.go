package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/inventory-search/internal/config"
	"github.com/Lixing-Zhang/inventory-search/internal/handlers"
	"github.com/Lixing-Zhang/inventory-search/internal/inventory"
	"github.com/Lixing-Zhang/inventory-search/internal/middleware"
	"github.com/Lixing-Zhang/inventory-search/internal/service"
	"github.com/Lixing-Zhang/inventory-search/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting inventory search server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"inventory_base_url", cfg.Inventory.BaseURL,
		"log_level", cfg.LogLevel,
	)

	// Upstream client and services
	client := inventory.NewClient(cfg.Inventory.BaseURL, cfg.Inventory.Timeout, log)
	productService := service.NewProductService(client)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Inventory.BaseURL, log)
	pageHandler := handlers.NewPageHandler(productService, log)
	productHandler := handlers.NewProductHandler(productService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.TokenCookie(cfg.Auth.TokenCookie))

	r.Get("/health", healthHandler.ServeHTTP)

	// Search page
	r.Get("/", pageHandler.ServeHTTP)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: cfg.Server.AllowCredentials,
			MaxAge:           300,
		}))
		r.Use(middleware.RequireToken)

		r.Get("/product", productHandler.ListProducts)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
