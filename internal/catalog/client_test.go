package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"session-cart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			ID:       int64(i + 1),
			Title:    fmt.Sprintf("Product %d", i+1),
			Price:    float64(i+1) * 1.5,
			Image:    fmt.Sprintf("https://img.example/%d.png", i+1),
			Category: "misc",
		}
	}
	return products
}

func TestClient_FetchProducts(t *testing.T) {
	var gotPath, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleProducts(10))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 10, server.Client(), zerolog.Nop())
	require.NoError(t, err)

	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, "10", gotLimit)
	require.Len(t, products, 10)
	assert.Equal(t, "Product 1", products[0].Title)
}

func TestClient_FetchProducts_TruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sampleProducts(20))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 0, server.Client(), zerolog.Nop())
	require.NoError(t, err)

	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, DefaultLimit)
}

func TestClient_FetchProducts_BasePathIsKept(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/v1", 10, server.Client(), zerolog.Nop())
	require.NoError(t, err)

	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/v1/products", gotPath)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestClient_FetchProducts_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		errorMsg string
	}{
		{
			name: "Upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			errorMsg: "unexpected status 503",
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"a list"`))
			},
			errorMsg: "failed to decode products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := NewClient(server.URL, 10, server.Client(), zerolog.Nop())
			require.NoError(t, err)

			products, err := client.FetchProducts(context.Background())

			require.Error(t, err)
			assert.Nil(t, products)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestClient_FetchProducts_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url, 10, nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.FetchProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch products")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative/only", "://bad"} {
		_, err := NewClient(raw, 10, nil, zerolog.Nop())
		assert.Error(t, err, raw)
	}
}
