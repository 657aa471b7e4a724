package cart

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"phuler.GO/catalog"
	"phuler.GO/core/kv"
)

func testProduct(id uint, price float64, salePrice *float64) *catalog.Product {
	return &catalog.Product{
		ID:        id,
		Name:      "Test Product",
		Category:  "necklaces",
		Price:     price,
		SalePrice: salePrice,
		Rating:    4.5,
		Images:    []string{"https://example.com/p.jpg"},
	}
}

func fptr(v float64) *float64 { return &v }

func newTestEngine(t *testing.T) (*Engine, kv.Store) {
	t.Helper()
	store := kv.NewMemoryStore()
	return New(store, "test:cart"), store
}

func TestAddToCart_MergesSameOptions(t *testing.T) {
	e, _ := newTestEngine(t)
	p := testProduct(1, 3200, nil)

	opts := map[string]string{"chain length": "16-18 inches"}
	if _, err := e.AddToCart(p, 1, opts); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	// same options in a different map instance must merge
	if _, err := e.AddToCart(p, 1, map[string]string{"chain length": "16-18 inches"}); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("line items = %d, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
}

func TestAddToCart_DistinctOptions(t *testing.T) {
	e, _ := newTestEngine(t)
	p := testProduct(1, 3200, nil)

	e.AddToCart(p, 1, map[string]string{"size": "S"})
	e.AddToCart(p, 1, map[string]string{"size": "M"})

	items := e.Items()
	if len(items) != 2 {
		t.Fatalf("line items = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Quantity != 1 {
			t.Errorf("item %s quantity = %d, want 1", item.CartItemID, item.Quantity)
		}
	}
	if items[0].CartItemID == items[1].CartItemID {
		t.Error("distinct line items share a cart item id")
	}
}

func TestAddToCart_EmptyVsNonEmptyOptionsAreDistinct(t *testing.T) {
	e, _ := newTestEngine(t)
	p := testProduct(1, 3200, nil)

	e.AddToCart(p, 1, nil)
	e.AddToCart(p, 1, map[string]string{"size": "S"})

	if got := len(e.Items()); got != 2 {
		t.Errorf("line items = %d, want 2", got)
	}
}

func TestAddToCart_RejectsBadInput(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.AddToCart(nil, 1, nil); err == nil {
		t.Error("nil product: want error")
	}
	if _, err := e.AddToCart(testProduct(1, 3200, nil), 0, nil); err == nil {
		t.Error("quantity 0: want error")
	}
	bad := testProduct(2, 1000, fptr(1500)) // sale price above price
	if _, err := e.AddToCart(bad, 1, nil); err == nil {
		t.Error("invalid product: want error")
	}
	if got := len(e.Items()); got != 0 {
		t.Errorf("cart should stay empty, has %d items", got)
	}
}

func TestSubtotalAndCount(t *testing.T) {
	e, _ := newTestEngine(t)
	// catalog example: 3200 base, 2800 with sale 2380
	e.AddToCart(testProduct(1, 3200, nil), 1, nil)
	e.AddToCart(testProduct(2, 2800, fptr(2380)), 2, nil)

	if got := e.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	want := 3200 + 2*2380.0
	if got := e.Subtotal(); got != want {
		t.Errorf("Subtotal = %v, want %v", got, want)
	}
}

func TestSubtotal_RecomputedAfterEveryMutation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddToCart(testProduct(1, 100, nil), 1, nil)
	item, _ := e.AddToCart(testProduct(2, 200, nil), 1, nil)

	e.UpdateQuantity(item.CartItemID, 3)
	if got := e.Subtotal(); got != 100+3*200.0 {
		t.Errorf("after update Subtotal = %v, want 700", got)
	}

	e.RemoveFromCart(item.CartItemID)
	if got := e.Subtotal(); got != 100 {
		t.Errorf("after remove Subtotal = %v, want 100", got)
	}
}

func TestUpdateQuantity_Floor(t *testing.T) {
	e, _ := newTestEngine(t)
	item, _ := e.AddToCart(testProduct(1, 100, nil), 2, nil)

	e.UpdateQuantity(item.CartItemID, 0)
	e.UpdateQuantity(item.CartItemID, -1)

	items := e.Items()
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2 (updates below 1 are rejected)", items[0].Quantity)
	}
}

func TestRemoveAndUpdate_UnknownID_NoOp(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddToCart(testProduct(1, 100, nil), 1, nil)

	e.RemoveFromCart("no-such-id")
	e.UpdateQuantity("no-such-id", 5)

	items := e.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Errorf("cart changed by no-op operations: %+v", items)
	}
}

func TestClearCart_RemovesDurableRecord(t *testing.T) {
	e, store := newTestEngine(t)
	e.AddToCart(testProduct(1, 100, nil), 1, nil)
	if _, ok := store.Get("test:cart"); !ok {
		t.Fatal("expected persisted record after add")
	}

	e.ClearCart()
	if got := len(e.Items()); got != 0 {
		t.Errorf("items after clear = %d, want 0", got)
	}
	if _, ok := store.Get("test:cart"); ok {
		t.Error("durable record should be removed on clear")
	}
}

func TestPersistence_SurvivesRestart(t *testing.T) {
	store := kv.NewMemoryStore()
	e := New(store, "test:cart")
	e.AddToCart(testProduct(1, 3200, nil), 1, map[string]string{"size": "S"})
	e.AddToCart(testProduct(2, 2800, fptr(2380)), 2, nil)
	before := e.Items()

	// simulated restart: a fresh engine over the same store and key
	reloaded := New(store, "test:cart")
	after := reloaded.Items()

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("cart changed across restart (-before +after):\n%s", diff)
	}
	if got := reloaded.Count(); got != 3 {
		t.Errorf("Count after restart = %d, want 3", got)
	}
}

func TestCorruptStorage_YieldsEmptyCart(t *testing.T) {
	store := kv.NewMemoryStore()
	store.Set("test:cart", "{not json")

	e := New(store, "test:cart")
	if got := len(e.Items()); got != 0 {
		t.Errorf("items = %d, want 0 for corrupt record", got)
	}
	// engine must stay usable
	if _, err := e.AddToCart(testProduct(1, 100, nil), 1, nil); err != nil {
		t.Errorf("AddToCart after corrupt load: %v", err)
	}
}

func TestLastAddedAndOpenIntent(t *testing.T) {
	e, _ := newTestEngine(t)
	if e.LastAdded() != nil {
		t.Error("LastAdded before any add: want nil")
	}
	if e.ConsumeOpenIntent() {
		t.Error("open intent before any add: want false")
	}

	e.AddToCart(testProduct(7, 100, nil), 1, nil)
	last := e.LastAdded()
	if last == nil || last.ProductID != 7 {
		t.Errorf("LastAdded = %+v, want product 7", last)
	}
	if !e.ConsumeOpenIntent() {
		t.Error("open intent after add: want true")
	}
	if e.ConsumeOpenIntent() {
		t.Error("open intent should be consumed")
	}
}

func TestSubscribe_EmitsItemAdded(t *testing.T) {
	e, _ := newTestEngine(t)
	var events []Event
	e.Subscribe(func(ev Event) { events = append(events, ev) })

	e.AddToCart(testProduct(1, 100, nil), 2, nil)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Kind != EventItemAdded {
		t.Errorf("event kind = %q, want %q", events[0].Kind, EventItemAdded)
	}
	if events[0].Item.Quantity != 2 {
		t.Errorf("event quantity = %d, want 2", events[0].Item.Quantity)
	}
}

func TestSnapshot_NotLiveReference(t *testing.T) {
	e, _ := newTestEngine(t)
	p := testProduct(1, 100, nil)
	e.AddToCart(p, 1, nil)

	p.Price = 999
	p.Name = "Renamed"

	items := e.Items()
	if items[0].Product.Price != 100 {
		t.Errorf("snapshot price = %v, want 100 (capture at add-time)", items[0].Product.Price)
	}
	if items[0].Product.Name != "Test Product" {
		t.Errorf("snapshot name = %q, want original", items[0].Product.Name)
	}
}

func TestCartItemID_ContainsProductID(t *testing.T) {
	e, _ := newTestEngine(t)
	item, _ := e.AddToCart(testProduct(42, 100, nil), 1, nil)
	if !strings.HasPrefix(item.CartItemID, "42-") {
		t.Errorf("CartItemID = %q, want prefix 42-", item.CartItemID)
	}
}
