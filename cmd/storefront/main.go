package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"session-cart/internal/catalog"
	"session-cart/internal/config"
	"session-cart/internal/discount"
	"session-cart/internal/storefront"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so they don't interleave with the shop output
	cfg.Logger.Format = "console"
	logger := config.NewLoggerTo(cfg.Logger, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := discount.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize discount table: %w", err)
	}

	client, err := catalog.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Limit,
		&http.Client{Timeout: cfg.Catalog.Timeout},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog client: %w", err)
	}

	store := storefront.NewStore(resolver, logger)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.Timeout)
	store.LoadCatalog(fetchCtx, client)
	cancel()

	shell := storefront.NewShell(store, os.Stdout)
	fmt.Fprintln(os.Stdout, "type help for commands")
	return shell.Run(ctx, os.Stdin)
}
