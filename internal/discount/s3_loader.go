package discount

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of the S3 client used by the S3 loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for reading gzipped discount files from AWS S3.
type s3Loader struct {
	client ObjectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based discount loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-discount-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 loader initialised")

	return NewS3LoaderWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3LoaderWithClient creates an S3 loader around an existing client.
func NewS3LoaderWithClient(client ObjectGetter, bucket string, logger zerolog.Logger) Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads a gzipped discount file from S3 and returns a Table.
// The key parameter should be the full S3 key (including any prefix).
func (l *s3Loader) Load(ctx context.Context, key string) (Table, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading discount file from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	table, err := readTable(ctx, result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("error reading discount file from S3")
		return nil, fmt.Errorf("error reading discount file from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("codes_loaded", table.Size()).
		Msg("discount file loaded successfully from S3")

	return table, nil
}

// fallbackLoader reads the discount table from the bucket and uses the
// local copy when the bucket is unreachable or the object is bad.
type fallbackLoader struct {
	remote Loader
	local  Loader
	prefix string
	logger zerolog.Logger
}

// NewFallbackLoader returns a Loader that reads prefix/<base name of path>
// from remote and falls back to path on local. A nil remote reads local only.
func NewFallbackLoader(remote, local Loader, prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote: remote,
		local:  local,
		prefix: prefix,
		logger: logger.With().Str("component", "discount-table-source").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, filePath string) (Table, error) {
	if l.remote == nil {
		return l.local.Load(ctx, filePath)
	}

	key := path.Join(l.prefix, path.Base(filePath))
	table, err := l.remote.Load(ctx, key)
	if err == nil {
		return table, nil
	}

	l.logger.Warn().
		Err(err).
		Str("s3_key", key).
		Str("local_file", filePath).
		Msg("discount table unavailable in S3, using local copy")

	return l.local.Load(ctx, filePath)
}
