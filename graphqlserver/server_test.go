package graphqlserver

import (
	"context"
	"encoding/json"
	"testing"

	gql "github.com/graph-gophers/graphql-go"

	"phuler.GO/catalog"
)

func fptr(v float64) *float64 { return &v }

func newTestSchema(t *testing.T) *gql.Schema {
	t.Helper()
	cat := catalog.New([]catalog.Product{
		{ID: 1, Name: "Lotus Pendant", Category: "necklaces", Collection: "florals", Material: "gold vermeil",
			Price: 3200, Rating: 4.8, IsBestseller: true, Images: []string{"a.jpg"}},
		{ID: 2, Name: "Wildflower Hoops", Category: "earrings", Collection: "florals", Material: "sterling silver",
			Price: 2800, SalePrice: fptr(2380), Rating: 4.6, IsNew: true, Images: []string{"b.jpg"}},
		{ID: 3, Name: "Fern Band", Category: "rings", Collection: "botanical", Material: "gold vermeil",
			Price: 1900, Rating: 4.9, Images: []string{"c.jpg"}},
	})
	s, err := NewSchema(cat)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return s
}

func exec(t *testing.T, s *gql.Schema, query string) map[string]interface{} {
	t.Helper()
	resp := s.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("query errors: %v", resp.Errors)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("bad response data %s: %v", resp.Data, err)
	}
	return data
}

func TestProductsQuery_Unfiltered(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ products { totalCount items { id name } } }`)

	products := data["products"].(map[string]interface{})
	if got := products["totalCount"].(float64); got != 3 {
		t.Errorf("totalCount = %v, want 3", got)
	}
}

func TestProductsQuery_Filtered(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ products(material: "gold vermeil", maxPrice: 2000) { items { name effectivePrice } } }`)

	items := data["products"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	item := items[0].(map[string]interface{})
	if item["name"].(string) != "Fern Band" {
		t.Errorf("name = %v", item["name"])
	}
	if item["effectivePrice"].(float64) != 1900 {
		t.Errorf("effectivePrice = %v", item["effectivePrice"])
	}
}

func TestProductsQuery_Sorted(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ products(sort: "price-low-high") { items { name } } }`)

	items := data["products"].(map[string]interface{})["items"].([]interface{})
	first := items[0].(map[string]interface{})["name"].(string)
	if first != "Fern Band" {
		t.Errorf("first item = %q, want cheapest", first)
	}
}

func TestProductQuery_ByID(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ product(id: 2) { name salePrice effectivePrice } }`)

	p := data["product"].(map[string]interface{})
	if p["name"].(string) != "Wildflower Hoops" {
		t.Errorf("name = %v", p["name"])
	}
	if p["salePrice"].(float64) != 2380 || p["effectivePrice"].(float64) != 2380 {
		t.Errorf("prices = %v / %v", p["salePrice"], p["effectivePrice"])
	}
}

func TestProductQuery_UnknownIDIsNull(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ product(id: 999) { name } }`)
	if data["product"] != nil {
		t.Errorf("product = %v, want null", data["product"])
	}
}

func TestFacetsQuery(t *testing.T) {
	s := newTestSchema(t)
	data := exec(t, s, `{ facets { categories collections materials } }`)

	facets := data["facets"].(map[string]interface{})
	if got := len(facets["categories"].([]interface{})); got != 3 {
		t.Errorf("categories = %v", facets["categories"])
	}
	if got := len(facets["materials"].([]interface{})); got != 2 {
		t.Errorf("materials = %v", facets["materials"])
	}
}
