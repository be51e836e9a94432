package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"session-cart/internal/catalog"
	"session-cart/internal/discount"
	"session-cart/internal/handler"
	"session-cart/internal/middleware"
	"session-cart/internal/model"
	"session-cart/internal/repository"
	"session-cart/internal/router"
	"session-cart/internal/service"
	"session-cart/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCatalogServer serves a fixed product list in the upstream format.
func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	products := []model.Product{
		{ID: 1, Title: "Fjallraven Backpack", Price: 109.95, Category: "men's clothing"},
		{ID: 2, Title: "Mens Casual Premium Slim Fit T-Shirts", Price: 22.3, Category: "men's clothing"},
		{ID: 3, Title: "Mens Cotton Jacket", Price: 55.99, Category: "men's clothing"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupTestServer(t *testing.T, testDB *TestDB) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(testDB.Pool, time.Hour, logger)
	sessions := session.NewManager(sessionRepo, logger)

	client, err := catalog.NewClient(newCatalogServer(t).URL, catalog.DefaultLimit, &http.Client{Timeout: 5 * time.Second}, logger)
	require.NoError(t, err)

	// Initialize services
	cartService := service.NewCartService(sessions, discount.NewResolver(discount.Builtin(), logger), logger)
	productService := service.NewProductService(client, logger)

	// Create router
	h := router.New(
		handler.NewCartHandler(cartService, logger),
		handler.NewProductHandler(productService, logger),
		sessions,
		router.Options{
			AllowOrigins: []string{"*"},
			Cookie:       middleware.CookieConfig{Name: "cart_session", MaxAge: time.Hour},
		},
		logger,
	)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, client *http.Client, method, url, body string, out interface{}) int {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestCartAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	srv := setupTestServer(t, testDB)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	t.Run("Add twice then apply discount", func(t *testing.T) {
		var cartResp model.CartResponse
		for i := 0; i < 2; i++ {
			status := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/add",
				`{"product_id":1,"title":"Widget","price":9.99,"image":null}`, &cartResp)
			require.Equal(t, http.StatusOK, status)
		}
		require.Len(t, cartResp.Cart, 1)
		assert.Equal(t, 2, cartResp.Cart[0].Quantity)

		var discountResp model.DiscountResponse
		status := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/apply-discount", `{"code":"CODE10"}`, &discountResp)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, discountResp.Success)

		var state model.GetCartResponse
		status = doJSON(t, client, http.MethodGet, srv.URL+"/api/cart", "", &state)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, model.Discount{Code: "CODE10", Percentage: 10}, state.Discount)
		assert.Equal(t, 19.98, state.Summary.Subtotal)
		assert.Equal(t, 17.98, state.Summary.Total)
	})

	t.Run("State is persisted in postgres", func(t *testing.T) {
		var count int
		err := testDB.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM sessions").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Clear resets cart and discount", func(t *testing.T) {
		var cartResp model.CartResponse
		status := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/clear", "", &cartResp)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, cartResp.Cart)

		var state model.GetCartResponse
		doJSON(t, client, http.MethodGet, srv.URL+"/api/cart", "", &state)
		assert.Equal(t, model.Discount{}, state.Discount)
		assert.Equal(t, 0, state.Summary.ItemCount)
	})

	t.Run("Update on absent product is 404", func(t *testing.T) {
		var errResp model.ErrorResponse
		status := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/update", `{"product_id":5,"quantity":2}`, &errResp)
		assert.Equal(t, http.StatusNotFound, status)
		assert.False(t, errResp.Success)
		assert.Equal(t, "Product not found in cart", errResp.Message)
	})
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	srv := setupTestServer(t, testDB)

	var products []model.Product
	status := doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/api/products?search=MENS", "", &products)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, products, 2)

	status = doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/api/products", "", &products)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, products, 3)
}
