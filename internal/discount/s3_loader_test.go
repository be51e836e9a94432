package discount

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) (Table, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) (Table, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

// fakeS3 serves a single object body.
type fakeS3 struct {
	body    []byte
	err     error
	lastKey string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = *params.Key
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func gzipLines(t *testing.T, lines ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := w.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{body: gzipLines(t, "S3CODE,30")}
	loader := NewS3LoaderWithClient(client, "bucket", zerolog.Nop())

	table, err := loader.Load(context.Background(), "discounts/table.gz")

	require.NoError(t, err)
	assert.Equal(t, "discounts/table.gz", client.lastKey)
	percentage, ok := table.Lookup("S3CODE")
	assert.True(t, ok)
	assert.Equal(t, 30, percentage)
}

func TestS3Loader_Load_GetObjectFails(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	loader := NewS3LoaderWithClient(client, "bucket", zerolog.Nop())

	table, err := loader.Load(context.Background(), "table.gz")

	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "bucket=bucket")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	s3Table := NewMapTable(1)
	s3Table.(*mapTable).Add("S3CODE", 30)
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Table, error) {
			assert.Equal(t, "discounts/table.gz", filePath, "S3 key should have prefix")
			return s3Table, nil
		},
	}
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Table, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "discounts/", zerolog.Nop())

	table, err := fallback.Load(context.Background(), "table.gz")
	require.NoError(t, err)
	_, ok := table.Lookup("S3CODE")
	assert.True(t, ok)
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Table, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	localTable := NewMapTable(1)
	localTable.(*mapTable).Add("LOCAL", 5)
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Table, error) {
			assert.Equal(t, "table.gz", filePath, "local file path should not have prefix")
			return localTable, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "discounts/", zerolog.Nop())

	table, err := fallback.Load(context.Background(), "table.gz")
	require.NoError(t, err)
	_, ok := table.Lookup("LOCAL")
	assert.True(t, ok)
}

func TestFallbackLoader_NoS3Loader(t *testing.T) {
	called := false
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (Table, error) {
			called = true
			return Builtin(), nil
		},
	}

	fallback := NewFallbackLoader(nil, fileLoader, "discounts/", zerolog.Nop())

	_, err := fallback.Load(context.Background(), "table.gz")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFallbackLoader_KeyUsesBaseName(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		file     string
		expected string
	}{
		{name: "Absolute local path", prefix: "discounts/", file: "/etc/session-cart/table.gz", expected: "discounts/table.gz"},
		{name: "Relative local path", prefix: "discounts", file: "data/discounts/table.gz", expected: "discounts/table.gz"},
		{name: "No prefix", prefix: "", file: "./table.gz", expected: "table.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotKey string
			remote := &mockLoader{
				loadFunc: func(ctx context.Context, key string) (Table, error) {
					gotKey = key
					return Builtin(), nil
				},
			}

			fallback := NewFallbackLoader(remote, NewFileLoader(zerolog.Nop()), tt.prefix, zerolog.Nop())

			_, err := fallback.Load(context.Background(), tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, gotKey)
		})
	}
}
