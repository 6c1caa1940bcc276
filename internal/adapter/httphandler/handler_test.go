package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/visionframe/internal/adapter/httphandler"
	"github.com/niksmo/visionframe/internal/adapter/storage"
	"github.com/niksmo/visionframe/internal/core/catalog"
	"github.com/niksmo/visionframe/internal/core/favorites"
	"github.com/niksmo/visionframe/internal/core/history"
	"github.com/niksmo/visionframe/internal/core/port"
	"github.com/niksmo/visionframe/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWritesKV struct {
	*storage.MemoryKV
}

func (failingWritesKV) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func newTestHandler(t *testing.T, kv port.KVStorage) http.Handler {
	t.Helper()
	s := service.New(
		catalog.Default(),
		favorites.NewStore(kv, ""),
		history.NewStore(kv, ""),
		nil, nil, nil,
	)
	require.NoError(t, s.Load(t.Context()))

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, s)
	httphandler.RegisterSearch(mux, s)
	httphandler.RegisterFavorites(mux, s)
	httphandler.RegisterCart(mux, s)
	return httphandler.AllowJSON(mux)
}

func do(
	t *testing.T, h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func productIDs(ps []httphandler.Product) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestProductsHandler(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryKV())

	t.Run("All", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.ProductList](t, w)
		assert.Len(t, res.Products, 11)
		assert.False(t, res.Empty)
	})

	t.Run("SunglassesPriceRange", func(t *testing.T) {
		w := do(t, h, http.MethodGet,
			"/v1/products?category=sunglasses&price_range=%24100+-+%24200", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.ProductList](t, w)
		assert.Equal(t,
			[]string{"feat-001", "feat-003", "sg-001", "sg-002"},
			productIDs(res.Products),
		)
	})

	t.Run("DeepLinkType", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products?type=eyeglasses", "")
		res := decode[httphandler.ProductList](t, w)
		for _, p := range res.Products {
			assert.Equal(t, "eyeglasses", p.Type)
		}
		assert.NotEmpty(t, res.Products)
	})

	t.Run("LegacyAllLabels", func(t *testing.T) {
		w := do(t, h, http.MethodGet,
			"/v1/products?brand=All+Brands&shape=All+Shapes"+
				"&material=All+Materials&price_range=All+Prices", "")
		res := decode[httphandler.ProductList](t, w)
		assert.Len(t, res.Products, 11)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products?brand=Nobody", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.ProductList](t, w)
		assert.True(t, res.Empty)
		assert.NotEmpty(t, res.Message)
		assert.NotNil(t, res.Products)
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products?category=hats", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ByID", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products/eg-001", "")
		require.Equal(t, http.StatusOK, w.Code)
		p := decode[httphandler.Product](t, w)
		assert.Equal(t, "eg-001", p.ID)
		assert.Equal(t, "289.99", p.Price.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PopularityUnavailable", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products/eg-001/popularity", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSearchHandler(t *testing.T) {
	kv := storage.NewMemoryKV()
	h := newTestHandler(t, kv)

	t.Run("Results", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/search?q=oliver", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.SearchResult](t, w)
		assert.False(t, res.ShowHistory)
		assert.Equal(t, []string{"eg-001"}, productIDs(res.Products))
	})

	t.Run("NoResults", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/search?q=zzzz", "")
		res := decode[httphandler.SearchResult](t, w)
		assert.True(t, res.Empty)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("SubmitAndHistory", func(t *testing.T) {
		for _, q := range []string{"abc", "xyz", "abc"} {
			w := do(t, h, http.MethodPost, "/v1/search/history",
				`{"query":"`+q+`"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := do(t, h, http.MethodGet, "/v1/search?q=", "")
		res := decode[httphandler.SearchResult](t, w)
		assert.True(t, res.ShowHistory)
		assert.Equal(t, []string{"abc", "xyz"}, res.History)

		stored, err := kv.Get(t.Context(), history.DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, `["abc","xyz"]`, stored)
	})

	t.Run("SubmitEmpty", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/search/history", `{"query":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Clear", func(t *testing.T) {
		w := do(t, h, http.MethodDelete, "/v1/search/history", "")
		require.Equal(t, http.StatusOK, w.Code)

		w = do(t, h, http.MethodGet, "/v1/search/history", "")
		res := decode[httphandler.SearchHistory](t, w)
		assert.Empty(t, res.History)
	})
}

func TestFavoritesHandler(t *testing.T) {
	t.Run("Toggle", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		h := newTestHandler(t, kv)

		w := do(t, h, http.MethodPost, "/v1/favorites/sg-001/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.FavoriteToggle](t, w)
		assert.True(t, res.IsFavorite)
		assert.True(t, res.Persisted)

		stored, err := kv.Get(t.Context(), favorites.DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, `["sg-001"]`, stored)

		w = do(t, h, http.MethodGet, "/v1/favorites/sg-001", "")
		status := decode[httphandler.FavoriteStatus](t, w)
		assert.Equal(t, "favorite", status.Status)

		w = do(t, h, http.MethodGet, "/v1/favorites", "")
		list := decode[httphandler.FavoriteList](t, w)
		assert.True(t, list.Loaded)
		assert.Equal(t, []string{"sg-001"}, productIDs(list.Products))
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		h := newTestHandler(t, storage.NewMemoryKV())
		w := do(t, h, http.MethodPost, "/v1/favorites/nope/toggle", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("WriteFailureWarns", func(t *testing.T) {
		h := newTestHandler(t, failingWritesKV{storage.NewMemoryKV()})

		w := do(t, h, http.MethodPost, "/v1/favorites/sg-001/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[httphandler.FavoriteToggle](t, w)
		assert.True(t, res.IsFavorite)
		assert.False(t, res.Persisted)
		assert.NotEmpty(t, res.Warning)
	})
}

func TestCartHandler(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryKV())

	w := do(t, h, http.MethodPost, "/v1/cart/items",
		`{"product_id":"eg-001","color":"Tortoise","quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[httphandler.Cart](t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "579.98", cart.Subtotal.String())
	assert.Equal(t, "5.99", cart.Shipping.String())
	assert.Equal(t, "585.97", cart.Total.String())

	w = do(t, h, http.MethodPatch, "/v1/cart/items/eg-001",
		`{"color":"Tortoise","delta":-5}`)
	require.Equal(t, http.StatusOK, w.Code)
	cart = decode[httphandler.Cart](t, w)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	w = do(t, h, http.MethodPost, "/v1/cart/items",
		`{"product_id":"eg-001","color":"Purple"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodDelete, "/v1/cart/items/eg-001?color=Tortoise", "")
	require.Equal(t, http.StatusOK, w.Code)
	cart = decode[httphandler.Cart](t, w)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	w = do(t, h, http.MethodDelete, "/v1/cart/items/eg-001?color=Tortoise", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAllowJSON(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryKV())

	r := httptest.NewRequest(http.MethodPost, "/v1/search/history",
		strings.NewReader(`{"query":"abc"}`))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/v1/search/history",
		strings.NewReader(`{"query":"abc"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t, storage.NewMemoryKV())

	t.Run("MethodAndPath", func(t *testing.T) {
		tests := []struct {
			method, target string
			want           int
		}{
			{http.MethodGet, "/v1/products", http.StatusOK},
			{http.MethodGet, "/v1/products/sg-001", http.StatusOK},
			{http.MethodGet, "/v1/search?q=oliver", http.StatusOK},
			{http.MethodGet, "/v1/search/history", http.StatusOK},
			{http.MethodGet, "/v1/favorites", http.StatusOK},
			{http.MethodGet, "/v1/favorites/sg-001", http.StatusOK},
			{http.MethodGet, "/v1/cart", http.StatusOK},
			{http.MethodGet, "/v1/unknown", http.StatusNotFound},
		}
		for _, tt := range tests {
			w := do(t, h, tt.method, tt.target, "")
			assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.target)
		}
	})

	t.Run("PathValue", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/v1/products/eg-001", "")
		require.Equal(t, http.StatusOK, w.Code)
		p := decode[httphandler.Product](t, w)
		assert.Equal(t, "eg-001", p.ID)
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/v1/search", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Header().Get("Allow"), http.MethodGet)

		w = do(t, h, http.MethodGet, "/v1/favorites/sg-001/toggle", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	})
}
