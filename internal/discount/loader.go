package discount

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped discount files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based discount loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "discount-loader").Logger(),
	}
}

// Load reads a gzipped discount file and returns a Table.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Table, error) {
	l.logger.Info().Str("file", filePath).Msg("loading discount file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open discount file")
		return nil, fmt.Errorf("failed to open discount file %s: %w", filePath, err)
	}
	defer file.Close()

	table, err := readTable(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading discount file")
		return nil, fmt.Errorf("error reading discount file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", table.Size()).
		Msg("discount file loaded successfully")

	return table, nil
}

// readTable parses a gzipped stream of "CODE,PERCENT" lines.
func readTable(ctx context.Context, r io.Reader) (Table, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	table := NewMapTable(16).(*mapTable)

	scanner := bufio.NewScanner(gzipReader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, percentage, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		table.Add(code, percentage)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

func parseLine(line string) (string, int, error) {
	code, rawPercentage, found := strings.Cut(line, ",")
	if !found {
		return "", 0, fmt.Errorf("expected CODE,PERCENT but got %q", line)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return "", 0, fmt.Errorf("empty discount code")
	}

	percentage, err := strconv.Atoi(strings.TrimSpace(rawPercentage))
	if err != nil {
		return "", 0, fmt.Errorf("invalid percentage for %s: %w", code, err)
	}
	if percentage < 1 || percentage > 100 {
		return "", 0, fmt.Errorf("percentage for %s out of range: %d", code, percentage)
	}

	return code, percentage, nil
}
