package discount

import (
	"context"
	"errors"
	"testing"

	"session-cart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	table := Builtin()

	assert.Equal(t, 2, table.Size())

	percentage, ok := table.Lookup("CODE10")
	assert.True(t, ok)
	assert.Equal(t, 10, percentage)

	percentage, ok = table.Lookup("CODE20")
	assert.True(t, ok)
	assert.Equal(t, 20, percentage)
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		expected    model.Discount
		expectError bool
	}{
		{name: "CODE10", code: "CODE10", expected: model.Discount{Code: "CODE10", Percentage: 10}},
		{name: "CODE20", code: "CODE20", expected: model.Discount{Code: "CODE20", Percentage: 20}},
		{name: "Surrounding whitespace is trimmed", code: "  CODE20\t", expected: model.Discount{Code: "CODE20", Percentage: 20}},
		{name: "Lower case is rejected", code: "code10", expectError: true},
		{name: "Unknown code", code: "bogus", expectError: true},
		{name: "Empty code", code: "", expectError: true},
		{name: "Whitespace only", code: "   ", expectError: true},
	}

	resolver := NewResolver(Builtin(), zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, err := resolver.Resolve(tt.code)

			if tt.expectError {
				assert.ErrorIs(t, err, model.ErrInvalidDiscountCode)
				assert.True(t, discount.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, discount)
		})
	}
}

func TestAppliedMessage(t *testing.T) {
	assert.Equal(t, "10% discount applied!", AppliedMessage(10))
	assert.Equal(t, "20% discount applied!", AppliedMessage(20))
}

func TestLoadTable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Empty path uses built-in table", func(t *testing.T) {
		loader := &mockLoader{
			loadFunc: func(ctx context.Context, filePath string) (Table, error) {
				t.Error("loader should not be called")
				return nil, nil
			},
		}

		table, err := LoadTable(ctx, "", loader, logger)
		require.NoError(t, err)
		assert.Equal(t, 2, table.Size())
	})

	t.Run("Loader error is wrapped", func(t *testing.T) {
		loader := &mockLoader{
			loadFunc: func(ctx context.Context, filePath string) (Table, error) {
				return nil, errors.New("boom")
			},
		}

		table, err := LoadTable(ctx, "table.gz", loader, logger)
		require.Error(t, err)
		assert.Nil(t, table)
		assert.Contains(t, err.Error(), "failed to load discount table")
	})

	t.Run("Empty table is rejected", func(t *testing.T) {
		loader := &mockLoader{
			loadFunc: func(ctx context.Context, filePath string) (Table, error) {
				return NewMapTable(0), nil
			},
		}

		_, err := LoadTable(ctx, "table.gz", loader, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("File table replaces built-in codes", func(t *testing.T) {
		filePath := createTestDiscountFile(t, "table.gz", []string{"VIP30,30"})

		table, err := LoadTable(ctx, filePath, NewFileLoader(logger), logger)
		require.NoError(t, err)

		_, ok := table.Lookup("CODE10")
		assert.False(t, ok)
		percentage, ok := table.Lookup("VIP30")
		assert.True(t, ok)
		assert.Equal(t, 30, percentage)
	})
}
