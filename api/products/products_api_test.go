package products

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
	"phuler.GO/catalog"
	"phuler.GO/core/cache"
	"phuler.GO/core/kv"
	"phuler.GO/session"
)

func fptr(v float64) *float64 { return &v }

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cache.GetInstance().DeleteByTag("catalog")
	cat := catalog.New([]catalog.Product{
		{ID: 1, Name: "Lotus Pendant", Category: "necklaces", Collection: "florals", Material: "gold vermeil",
			Price: 3200, Rating: 4.8, IsBestseller: true, Images: []string{"a.jpg"}},
		{ID: 2, Name: "Wildflower Hoops", Category: "earrings", Collection: "florals", Material: "sterling silver",
			Price: 2800, SalePrice: fptr(2380), Rating: 4.6, IsNew: true, Images: []string{"b.jpg"}},
		{ID: 3, Name: "Fern Band", Category: "rings", Collection: "botanical", Material: "gold vermeil",
			Price: 1900, Rating: 4.9, Images: []string{"c.jpg"}},
	})
	deps := &api.Deps{
		Catalog:  cat,
		Sessions: session.NewManager(kv.NewMemoryStore()),
	}
	e := echo.New()
	RegisterProductRoutes(e.Group("/api"), deps)
	return e
}

func get(t *testing.T, e *echo.Echo, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("GET %s: bad JSON %q: %v", path, rec.Body.String(), err)
	}
	return rec, payload
}

func itemNames(payload map[string]interface{}) []string {
	items := payload["items"].([]interface{})
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.(map[string]interface{})["name"].(string)
	}
	return names
}

func TestListProducts_Unfiltered(t *testing.T) {
	e := newTestServer(t)
	rec, payload := get(t, e, "/api/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := payload["total"].(float64); got != 3 {
		t.Errorf("total = %v, want 3", got)
	}
	facets := payload["facets"].(map[string]interface{})
	if len(facets["categories"].([]interface{})) != 3 {
		t.Errorf("facets = %v", facets)
	}
}

func TestListProducts_FilterByCategory(t *testing.T) {
	e := newTestServer(t)
	_, payload := get(t, e, "/api/products?category=rings")
	names := itemNames(payload)
	if len(names) != 1 || names[0] != "Fern Band" {
		t.Errorf("items = %v", names)
	}
}

func TestListProducts_ConjunctiveFilters(t *testing.T) {
	e := newTestServer(t)
	_, payload := get(t, e, "/api/products?material=gold%20vermeil&maxPrice=2000")
	names := itemNames(payload)
	if len(names) != 1 || names[0] != "Fern Band" {
		t.Errorf("items = %v", names)
	}
}

func TestListProducts_SortByPrice(t *testing.T) {
	e := newTestServer(t)
	_, payload := get(t, e, "/api/products?sort=price-low-high")
	names := itemNames(payload)
	want := []string{"Fern Band", "Wildflower Hoops", "Lotus Pendant"} // 1900, 2380 (sale), 3200
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestListProducts_SearchParam(t *testing.T) {
	e := newTestServer(t)
	_, payload := get(t, e, "/api/products?q=fern")
	names := itemNames(payload)
	if len(names) != 1 || names[0] != "Fern Band" {
		t.Errorf("items = %v", names)
	}
}

func TestListProducts_EchoesCanonicalQuery(t *testing.T) {
	e := newTestServer(t)
	_, payload := get(t, e, "/api/products?onSale=true&category=earrings")
	if got := payload["query"].(string); got != "category=earrings&onSale=true" {
		t.Errorf("query = %q", got)
	}
}

func TestListProducts_CachedResponseStable(t *testing.T) {
	e := newTestServer(t)
	_, first := get(t, e, "/api/products?category=rings")
	_, second := get(t, e, "/api/products?category=rings")
	if first["total"].(float64) != second["total"].(float64) {
		t.Errorf("cached response diverged: %v vs %v", first["total"], second["total"])
	}
}

func TestGetProduct(t *testing.T) {
	e := newTestServer(t)
	rec, payload := get(t, e, "/api/products/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if payload["name"].(string) != "Wildflower Hoops" {
		t.Errorf("payload = %v", payload)
	}
	if payload["salePrice"].(float64) != 2380 {
		t.Errorf("salePrice = %v", payload["salePrice"])
	}
}

func TestGetProduct_Errors(t *testing.T) {
	e := newTestServer(t)
	rec, _ := get(t, e, "/api/products/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
	rec, _ = get(t, e, "/api/products/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}
