package discount

import (
	"context"

	"session-cart/internal/config"

	"github.com/rs/zerolog"
)

// NewLoader builds the table loader for the configured sources. With S3
// enabled the bucket is tried first and the local file is the fallback.
func NewLoader(ctx context.Context, s3Cfg config.S3Config, logger zerolog.Logger) Loader {
	fileLoader := NewFileLoader(logger)
	if !s3Cfg.Enabled {
		return fileLoader
	}

	s3Loader, err := NewS3Loader(ctx, s3Cfg.Bucket, s3Cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return NewFallbackLoader(s3Loader, fileLoader, s3Cfg.Prefix, logger)
}

// Setup loads the configured discount table and returns a resolver over it.
func Setup(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Resolver, error) {
	var loader Loader
	if cfg.Discount.File != "" {
		loader = NewLoader(ctx, cfg.S3, logger)
	}

	table, err := LoadTable(ctx, cfg.Discount.File, loader, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("codes", table.Size()).Msg("discount table ready")
	return NewResolver(table, logger), nil
}
