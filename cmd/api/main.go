package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-cart/internal/catalog"
	"session-cart/internal/config"
	"session-cart/internal/database"
	"session-cart/internal/discount"
	"session-cart/internal/handler"
	"session-cart/internal/middleware"
	"session-cart/internal/repository"
	"session-cart/internal/router"
	"session-cart/internal/service"
	"session-cart/internal/session"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting session-cart API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize session repository
	sessionRepo, closeStore, err := newSessionRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Load discount table (built-in, local file or S3 with local fallback)
	resolver, err := discount.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize discount table: %w", err)
	}

	// Initialize catalog client
	catalogClient, err := catalog.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Limit,
		&http.Client{Timeout: cfg.Catalog.Timeout},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}

	// Initialize services
	sessions := session.NewManager(sessionRepo, logger)
	cartService := service.NewCartService(sessions, resolver, logger)
	productService := service.NewProductService(catalogClient, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService, logger)
	productHandler := handler.NewProductHandler(productService, logger)

	if cfg.CORS.AllowsAnyOrigin() {
		logger.Warn().Msg("CORS_ALLOW_ORIGINS is *: cross-origin browsers will not send the session cookie")
	}

	// Initialize router
	mux := router.New(cartHandler, productHandler, sessions, router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("session_store", cfg.Session.Store).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newSessionRepository builds the configured session store and a func that releases it.
func newSessionRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.SessionRepository, func(), error) {
	if cfg.Session.Store != config.SessionStorePostgres {
		logger.Info().Dur("ttl", cfg.Session.TTL).Msg("using in-memory session store")
		return repository.NewMemorySessionRepository(cfg.Session.TTL, logger), func() {}, nil
	}

	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repository.NewSessionRepository(pool, cfg.Session.TTL, logger), pool.Close, nil
}
