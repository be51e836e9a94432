//go:build ignore

package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Writes a sample gzipped discount table for DISCOUNT_FILE.
// The file replaces the built-in table, so it repeats CODE10 and CODE20.
func main() {
	dataDir := "data/discounts"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	entries := []struct {
		code       string
		percentage int
	}{
		{"CODE10", 10},
		{"CODE20", 20},
		{"WELCOME5", 5},
		{"SUMMER25", 25},
		{"STAFF50", 50},
	}

	filePath := filepath.Join(dataDir, "discounts.csv.gz")
	file, err := os.Create(filePath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	fmt.Fprintln(gzipWriter, "# CODE,PERCENT")
	for _, e := range entries {
		if _, err := fmt.Fprintf(gzipWriter, "%s,%d\n", e.code, e.percentage); err != nil {
			log.Fatalf("Failed to write entry: %v", err)
		}
	}

	fmt.Printf("Created %s with %d codes\n", filePath, len(entries))
	fmt.Printf("\nRun the API with:\n  DISCOUNT_FILE=%s go run ./cmd/api\n", filePath)
}
