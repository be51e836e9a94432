package storefront

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Run(t *testing.T) {
	s := newTestStore(t)
	var out bytes.Buffer
	sh := NewShell(s, &out)

	input := strings.Join([]string{
		"search shirt",
		"add 1",
		"add 1",
		"discount CODE10",
		"cart",
		"quit",
		"add 2",
	}, "\n")

	require.NoError(t, sh.Run(context.Background(), strings.NewReader(input)))

	output := out.String()
	assert.Contains(t, output, "Blue Shirt")
	assert.Contains(t, output, "added Widget")
	assert.Contains(t, output, "10% discount applied!")
	assert.Contains(t, output, "subtotal: $19.98")
	assert.Contains(t, output, "discount (10%): -$2.00")
	assert.Contains(t, output, "total: $17.98")

	// commands after quit are not run
	require.Len(t, s.Lines(), 1)
}

func TestShell_Exec(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "Unknown command", line: "checkout", expected: `unknown command "checkout"`},
		{name: "Invalid id", line: "add abc", expected: `invalid product id "abc"`},
		{name: "Missing product", line: "add 42", expected: "no product with id 42"},
		{name: "Invalid code", line: "discount nope", expected: "Invalid code"},
		{name: "Empty cart", line: "cart", expected: "cart is empty"},
		{name: "Clear", line: "clear", expected: "cart cleared"},
		{name: "Help", line: "help", expected: "commands:"},
		{name: "No matches", line: "search laptop", expected: "no products"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sh := NewShell(newTestStore(t), &out)

			assert.True(t, sh.Exec(tt.line))
			assert.Contains(t, out.String(), tt.expected)
		})
	}

	t.Run("Quit", func(t *testing.T) {
		sh := NewShell(newTestStore(t), &bytes.Buffer{})
		assert.False(t, sh.Exec("quit"))
	})
}

func TestShell_RunStopsOnCancel(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sh := NewShell(newTestStore(t), &bytes.Buffer{})

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx, in) }()

	_, err := w.Write([]byte("add 1\n"))
	require.NoError(t, err)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
