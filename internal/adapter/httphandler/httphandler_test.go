package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlobs struct {
	m map[string][]byte
}

func (b *memBlobs) Load(_ context.Context, key string, v any) bool {
	data, ok := b.m[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (b *memBlobs) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.m[key] = data
	return nil
}

type fakeProvider struct {
	products   []domain.Product
	categories []string
}

func (p fakeProvider) FetchProducts(context.Context) ([]domain.Product, error) {
	return p.products, nil
}

func (p fakeProvider) FetchCategories(context.Context) ([]string, error) {
	return p.categories, nil
}

type fixture struct {
	mux      http.Handler
	catalog  *service.CatalogService
	cart     *service.CartService
	wishlist *service.WishlistService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	provider := fakeProvider{
		products: []domain.Product{
			{ID: 1, Title: "Mug", Description: "ceramic", Price: 10, Category: "a", Image: "http://img/1"},
			{ID: 2, Title: `<b>Evil & Plate</b>`, Description: "flat", Price: 5, Category: "b", Image: "http://img/2"},
		},
		categories: []string{"a", "b"},
	}

	notices := service.NewNoticeCenter(time.Hour)
	blobs := &memBlobs{m: make(map[string][]byte)}
	catalog := service.NewCatalogService(provider, notices, time.Millisecond)
	cart := service.NewCartService(t.Context(), blobs, notices, nil)
	wishlist := service.NewWishlistService(t.Context(), blobs, notices, nil, cart)
	require.NoError(t, catalog.Load(t.Context()))

	view, err := httphandler.NewRenderer(catalog, cart, wishlist)
	require.NoError(t, err)
	catalog.Subscribe(view.RefreshCatalog)
	cart.Subscribe(view.RefreshCart)
	wishlist.Subscribe(view.RefreshWishlist)
	view.RefreshCatalog()

	mux := http.NewServeMux()
	httphandler.RegisterViews(mux, view)
	httphandler.RegisterCatalog(mux, catalog)
	httphandler.RegisterCart(mux, cart, catalog)
	httphandler.RegisterWishlist(mux, wishlist, catalog)
	httphandler.RegisterStatus(mux, cart, wishlist, notices)

	return fixture{
		mux:      httphandler.AllowJSON(mux),
		catalog:  catalog,
		cart:     cart,
		wishlist: wishlist,
	}
}

func (f fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

func TestStorefrontRoutes(t *testing.T) {
	t.Run("PageRendersGridAndPanels", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodGet, "/", "")

		require.Equal(t, http.StatusOK, res.Code)
		body := res.Body.String()
		assert.Contains(t, body, "2 products found")
		assert.Contains(t, body, "Your cart is empty")
		assert.Contains(t, body, "Your wishlist is empty")
	})

	t.Run("UntrustedProductTextIsEscaped", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodGet, "/v1/storefront/grid", "")

		body := res.Body.String()
		assert.NotContains(t, body, "<b>Evil")
		assert.Contains(t, body, "&lt;b&gt;Evil &amp; Plate&lt;/b&gt;")
	})

	t.Run("CartAddUpdatesPanelAndBadges", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/cart/items",
			`{"product_id":"1","qty":2}`)
		require.Equal(t, http.StatusNoContent, res.Code)

		panel := f.do(t, http.MethodGet, "/v1/storefront/cart", "")
		assert.Contains(t, panel.Body.String(), "Mug")
		assert.Contains(t, panel.Body.String(), "20.00 AZN")

		badges := f.do(t, http.MethodGet, "/v1/storefront/badges", "")
		var b httphandler.Badges
		require.NoError(t, json.Unmarshal(badges.Body.Bytes(), &b))
		assert.Equal(t, 2, b.Cart)
	})

	t.Run("CartAddUnknownProductIs404", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/cart/items",
			`{"product_id":"42"}`)
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Zero(t, f.cart.Count())
	})

	t.Run("PatchQuantityClampsToOne", func(t *testing.T) {
		f := newFixture(t)
		f.do(t, http.MethodPost, "/v1/cart/items", `{"product_id":"1","qty":2}`)

		res := f.do(t, http.MethodPatch, "/v1/cart/items/1", `{"qty":0}`)
		require.Equal(t, http.StatusNoContent, res.Code)

		es := f.cart.Entries()
		require.Len(t, es, 1)
		assert.Equal(t, 1, es[0].Quantity)
	})

	t.Run("CheckoutEmptyCartIsConflictWithNotice", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/checkout", "")
		require.Equal(t, http.StatusConflict, res.Code)

		notices := f.do(t, http.MethodGet, "/v1/notices", "")
		var ns []httphandler.Notice
		require.NoError(t, json.Unmarshal(notices.Body.Bytes(), &ns))
		require.NotEmpty(t, ns)
		assert.Equal(t, "error", ns[len(ns)-1].Kind)
	})

	t.Run("WishlistToggleAndMove", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/wishlist/items",
			`{"product_id":"2"}`)
		require.Equal(t, http.StatusNoContent, res.Code)
		assert.Equal(t, 1, f.wishlist.Count())

		res = f.do(t, http.MethodPost, "/v1/wishlist/items/2/move", "")
		require.Equal(t, http.StatusNoContent, res.Code)
		assert.Zero(t, f.wishlist.Count())
		assert.Equal(t, 1, f.cart.Count())
	})

	t.Run("FilterBadSortIs400", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/filter", `{"sort":"price"}`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("FilterCategoryNarrowsGrid", func(t *testing.T) {
		f := newFixture(t)

		res := f.do(t, http.MethodPost, "/v1/filter", `{"category":"b"}`)
		require.Equal(t, http.StatusOK, res.Code)

		grid := f.do(t, http.MethodGet, "/v1/storefront/grid", "")
		assert.Contains(t, grid.Body.String(), "1 products found")
	})

	t.Run("NonJSONBodyIs415", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items",
			bytes.NewReader([]byte("product_id=1")),
		)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}
