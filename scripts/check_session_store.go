//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"session-cart/internal/config"
	"session-cart/internal/database"
)

// Migrates the session store configured by the DB_* variables and reports
// how many sessions are live. Pass -prune to delete expired rows.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := config.NewLogger(cfg.Logger)

	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open session store: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	var live, expired int
	err = pool.QueryRow(ctx, `
		SELECT current_database(),
			COUNT(*) FILTER (WHERE expires_at > NOW()),
			COUNT(*) FILTER (WHERE expires_at <= NOW())
		FROM sessions
	`).Scan(&dbName, &live, &expired)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected to database: %s\n", dbName)
	fmt.Printf("Live sessions: %d, expired sessions: %d\n", live, expired)

	if len(os.Args) > 1 && os.Args[1] == "-prune" {
		tag, err := pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Prune failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Pruned %d expired sessions\n", tag.RowsAffected())
	}
}
