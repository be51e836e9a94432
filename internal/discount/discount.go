// Package discount resolves discount codes to percentage reductions.
package discount

import (
	"context"
)

// Table maps discount codes to percentages.
type Table interface {
	// Lookup returns the percentage for a code. Codes are matched case-sensitively.
	Lookup(code string) (int, bool)

	// Size returns the number of codes in the table.
	Size() int
}

// Loader defines the interface for loading discount table files.
type Loader interface {
	// Load reads a gzipped discount file and returns a Table.
	// Each non-empty line holds "CODE,PERCENT".
	Load(ctx context.Context, filePath string) (Table, error)
}
