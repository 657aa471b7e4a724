// Package cart owns the shopping cart line items, their merge and quantity
// rules, and the derived subtotal/count aggregates. Every mutation is
// persisted immediately through a kv.Store so a session survives restarts.
package cart

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"phuler.GO/catalog"
	"phuler.GO/core/kv"
)

// Snapshot is the product state captured at add-time. Later catalog changes
// must not retroactively alter what the cart displays.
type Snapshot struct {
	ProductID uint     `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice"`
	Images    []string `json:"images"`
	Category  string   `json:"category"`
	Material  string   `json:"material"`
}

// EffectivePrice returns the sale price when set, the base price otherwise.
func (s *Snapshot) EffectivePrice() float64 {
	if s.SalePrice != nil {
		return *s.SalePrice
	}
	return s.Price
}

// LineItem is one cart entry. Two line items for the same product are
// distinct when their selected options differ.
type LineItem struct {
	CartItemID      string            `json:"cartItemId"`
	Product         Snapshot          `json:"product"`
	SelectedOptions map[string]string `json:"selectedOptions"`
	Quantity        int               `json:"quantity"`
}

// Event kinds emitted by the engine.
const (
	EventItemAdded = "item_added"
)

// Event is a discrete cart notification for observers (toast queue, cart
// drawer). Subscribers get a copy of the affected line item.
type Event struct {
	Kind string
	Item LineItem
}

// Engine is the session-scoped cart. Safe for concurrent use, though the
// expected caller is a single UI session.
type Engine struct {
	mu         sync.Mutex
	store      kv.Store
	key        string
	items      []LineItem
	lastAdded  *Snapshot
	openIntent bool
	subs       []func(Event)
}

// New loads the persisted cart from store under key. A missing or corrupt
// record yields an empty cart, never an error.
func New(store kv.Store, key string) *Engine {
	e := &Engine{store: store, key: key}
	kv.LoadCollection(store, key, &e.items)
	return e
}

// Subscribe registers an observer for cart events. Call before any
// mutations; there is no unsubscribe (engines are session-scoped and
// torn down whole).
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// AddToCart adds quantity units of product with the given option selections.
// An existing line item with the same product id and structurally equal
// options absorbs the quantity instead of creating a duplicate. Returns the
// affected line item. A nil or invalid product, or quantity < 1, is a
// programmer error and is returned to the caller.
func (e *Engine) AddToCart(p *catalog.Product, quantity int, selectedOptions map[string]string) (*LineItem, error) {
	if p == nil {
		return nil, fmt.Errorf("cart: nil product")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cart: invalid product: %w", err)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("cart: quantity must be >= 1, got %d", quantity)
	}
	if selectedOptions == nil {
		selectedOptions = map[string]string{}
	}

	e.mu.Lock()
	var affected LineItem
	merged := false
	for i := range e.items {
		if e.items[i].Product.ProductID == p.ID && optionsEqual(e.items[i].SelectedOptions, selectedOptions) {
			e.items[i].Quantity += quantity
			affected = e.items[i]
			merged = true
			break
		}
	}
	if !merged {
		item := LineItem{
			CartItemID:      e.newItemID(p.ID),
			Product:         snapshotOf(p),
			SelectedOptions: copyOptions(selectedOptions),
			Quantity:        quantity,
		}
		e.items = append(e.items, item)
		affected = item
	}
	snap := snapshotOf(p)
	e.lastAdded = &snap
	e.openIntent = true
	e.persist()
	subs := e.subs
	e.mu.Unlock()

	ev := Event{Kind: EventItemAdded, Item: affected}
	for _, fn := range subs {
		fn(ev)
	}
	result := affected
	return &result, nil
}

// RemoveFromCart deletes the line item with the given id. Removing an
// unknown id is a no-op.
func (e *Engine) RemoveFromCart(cartItemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.items {
		if e.items[i].CartItemID == cartItemID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			e.persist()
			return
		}
	}
}

// UpdateQuantity replaces a line item's quantity. Requests below 1 are
// silently rejected: a line item is removed explicitly, never zeroed through
// an update. Unknown ids are a no-op.
func (e *Engine) UpdateQuantity(cartItemID string, quantity int) {
	if quantity < 1 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.items {
		if e.items[i].CartItemID == cartItemID {
			e.items[i].Quantity = quantity
			e.persist()
			return
		}
	}
}

// ClearCart empties the cart and removes the durable record.
func (e *Engine) ClearCart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	if err := e.store.Remove(e.key); err != nil {
		log.Printf("cart: clearing %q: %v", e.key, err)
	}
}

// Items returns a copy of the line items in insertion order.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]LineItem, len(e.items))
	for i, item := range e.items {
		item.SelectedOptions = copyOptions(item.SelectedOptions)
		out[i] = item
	}
	return out
}

// Subtotal is the sum of effective price times quantity over all line items.
func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var total float64
	for i := range e.items {
		total += e.items[i].Product.EffectivePrice() * float64(e.items[i].Quantity)
	}
	return total
}

// Count is the total number of units in the cart, not the line item count.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for i := range e.items {
		count += e.items[i].Quantity
	}
	return count
}

// LastAdded returns the most recently added product snapshot, or nil.
// Exposed for the notification layer; the engine never shows toasts itself.
func (e *Engine) LastAdded() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastAdded == nil {
		return nil
	}
	snap := *e.lastAdded
	return &snap
}

// ConsumeOpenIntent reports whether an add requested the cart drawer to open,
// clearing the flag. A UI hint, not a UI action.
func (e *Engine) ConsumeOpenIntent() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	open := e.openIntent
	e.openIntent = false
	return open
}

// persist rewrites the durable record. Called with e.mu held. Storage
// failures are logged, never surfaced: the in-memory cart stays usable.
func (e *Engine) persist() {
	if err := kv.SaveCollection(e.store, e.key, e.items); err != nil {
		log.Printf("cart: persisting %q: %v", e.key, err)
	}
}

// newItemID generates a cart item id unique within this cart. Called with
// e.mu held.
func (e *Engine) newItemID(productID uint) string {
	for {
		id := fmt.Sprintf("%d-%s", productID, uuid.NewString()[:8])
		taken := false
		for i := range e.items {
			if e.items[i].CartItemID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func snapshotOf(p *catalog.Product) Snapshot {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	var sale *float64
	if p.SalePrice != nil {
		v := *p.SalePrice
		sale = &v
	}
	return Snapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		SalePrice: sale,
		Images:    images,
		Category:  p.Category,
		Material:  p.Material,
	}
}

// optionsEqual compares option maps as sets of key-value pairs, so the merge
// check never depends on insertion order.
func optionsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func copyOptions(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
