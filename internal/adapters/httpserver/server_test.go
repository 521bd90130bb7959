package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maurofranchi/gamegear/internal/domain"
	"github.com/maurofranchi/gamegear/internal/usecase"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	uc, err := usecase.NewCatalogUCFromProducts([]domain.Product{
		{ID: 1, Name: "Elite Gaming Mouse", Description: "High-precision gaming mouse", Price: 79.99, DiscountPercent: 10, Category: domain.CategoryAccessories, Rating: 4.5, Stock: 15},
		{ID: 2, Name: "Mechanical Keyboard RGB", Description: "Premium mechanical keyboard", Price: 159.99, Category: domain.CategoryAccessories, Rating: 5, Stock: 8},
		{ID: 3, Name: "Gaming Headset Pro", Description: "Immersive gaming headset", Price: 129.99, DiscountPercent: 15, Category: domain.CategoryAudio, Rating: 4, Stock: 20},
		{ID: 4, Name: "Sold Out Pedal", Description: "Racing pedal set", Price: 89.99, Category: domain.CategoryAccessories, Rating: 3.5, Stock: 0},
	})
	require.NoError(t, err)
	return New(uc)
}

// do runs one request, carrying the session cookie between calls.
func do(t *testing.T, h http.Handler, cookie *http.Cookie, method, path string, body any) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	next := cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			next = c
		}
	}
	return rec, next
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestProductsDefaultViewIsCatalogOrder(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []productDTO `json:"products"`
		Total    int          `json:"total"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, 4, resp.Total)
	assert.Equal(t, 1, resp.Products[0].ID)
	assert.Equal(t, "71.99", resp.Products[0].DiscountedPrice)
	assert.Equal(t, "unavailable", resp.Products[3].Availability)
}

func TestProductsFilterQuery(t *testing.T) {
	h := newTestHandler(t)
	rec, cookie := do(t, h, nil, http.MethodGet, "/api/products?category=Accessories&q=gaming&sort=price-low", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []productDTO       `json:"products"`
		Filter   domain.FilterState `json:"filter"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Elite Gaming Mouse", resp.Products[0].Name)
	assert.Equal(t, domain.SortPriceLow, resp.Filter.SortKey)

	// filter state persists in the session cookie
	rec, _ = do(t, h, cookie, http.MethodGet, "/api/products", nil)
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Products, 1)
}

func TestProductByID(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p productDTO
	decodeBody(t, rec, &p)
	assert.Equal(t, "Gaming Headset Pro", p.Name)
	assert.Equal(t, "110.49", p.DiscountedPrice)

	rec, _ = do(t, h, nil, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddFlow(t *testing.T) {
	h := newTestHandler(t)
	_, cookie := do(t, h, nil, http.MethodPost, "/api/cart", map[string]int{"productId": 1})
	rec, cookie := do(t, h, cookie, http.MethodPost, "/api/cart", map[string]int{"productId": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartDTO
	decodeBody(t, rec, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "143.98", cart.Lines[0].LineTotal)
	assert.Equal(t, "143.98", cart.Subtotal)

	// cookie survives a fresh GET
	rec, _ = do(t, h, cookie, http.MethodGet, "/api/cart", nil)
	decodeBody(t, rec, &cart)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestCartAddOutOfStock(t *testing.T) {
	h := newTestHandler(t)
	rec, cookie := do(t, h, nil, http.MethodPost, "/api/cart", map[string]int{"productId": 4})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, h, cookie, http.MethodGet, "/api/cart", nil)
	var cart cartDTO
	decodeBody(t, rec, &cart)
	assert.Empty(t, cart.Lines)
}

func TestCartAddUnknownProduct(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodPost, "/api/cart", map[string]int{"productId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartUpdateClampsAndRemoveIsIdempotent(t *testing.T) {
	h := newTestHandler(t)
	_, cookie := do(t, h, nil, http.MethodPost, "/api/cart", map[string]int{"productId": 2})
	rec, cookie := do(t, h, cookie, http.MethodPost, "/api/cart/update", map[string]int{"productId": 2, "delta": -1000})
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartDTO
	decodeBody(t, rec, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	rec, cookie = do(t, h, cookie, http.MethodPost, "/api/cart/remove", map[string]int{"productId": 999})
	decodeBody(t, rec, &cart)
	assert.Len(t, cart.Lines, 1)

	rec, _ = do(t, h, cookie, http.MethodPost, "/api/cart/remove", map[string]int{"productId": 2})
	decodeBody(t, rec, &cart)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, "0.00", cart.Subtotal)
}

func TestWishlistToggleFlow(t *testing.T) {
	h := newTestHandler(t)
	rec, cookie := do(t, h, nil, http.MethodPost, "/api/wishlist/toggle", map[string]int{"productId": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Wishlisted bool `json:"wishlisted"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Wishlisted)

	rec, cookie = do(t, h, cookie, http.MethodGet, "/api/wishlist", nil)
	var wl struct {
		Wishlist []int `json:"wishlist"`
	}
	decodeBody(t, rec, &wl)
	assert.Equal(t, []int{3}, wl.Wishlist)

	rec, _ = do(t, h, cookie, http.MethodPost, "/api/wishlist/toggle", map[string]int{"productId": 3})
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Wishlisted)
}

func TestCategories(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"All", "Accessories", "Audio", "Displays", "Furniture"}, resp.Categories)
}

func TestExportXLSX(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodGet, "/admin/export/xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := do(t, h, nil, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
