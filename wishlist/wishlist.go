// Package wishlist is the persistent set of saved products, deduplicated by
// product id.
package wishlist

import (
	"log"
	"sync"

	"phuler.GO/catalog"
	"phuler.GO/core/kv"
)

// Entry is the product snapshot stored for a wishlisted product.
type Entry struct {
	ProductID uint     `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice"`
	Images    []string `json:"images"`
	Category  string   `json:"category"`
}

// Engine is the session-scoped wishlist, persisted on every mutation.
type Engine struct {
	mu      sync.Mutex
	store   kv.Store
	key     string
	entries []Entry
}

// New loads the persisted wishlist from store under key. Missing or corrupt
// records yield an empty wishlist.
func New(store kv.Store, key string) *Engine {
	e := &Engine{store: store, key: key}
	kv.LoadCollection(store, key, &e.entries)
	return e
}

// Add inserts the product unless its id is already present (no-op then).
func (e *Engine) Add(p *catalog.Product) {
	if p == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ProductID == p.ID {
			return
		}
	}
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	var sale *float64
	if p.SalePrice != nil {
		v := *p.SalePrice
		sale = &v
	}
	e.entries = append(e.entries, Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		SalePrice: sale,
		Images:    images,
		Category:  p.Category,
	})
	e.persist()
}

// Remove deletes the entry with the given product id; no-op when absent.
func (e *Engine) Remove(productID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ProductID == productID {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			e.persist()
			return
		}
	}
}

// Contains reports whether a product id is wishlisted.
func (e *Engine) Contains(productID uint) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the entries in insertion order.
func (e *Engine) Items() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Clear empties the wishlist and removes the durable record.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = nil
	if err := e.store.Remove(e.key); err != nil {
		log.Printf("wishlist: clearing %q: %v", e.key, err)
	}
}

func (e *Engine) persist() {
	if err := kv.SaveCollection(e.store, e.key, e.entries); err != nil {
		log.Printf("wishlist: persisting %q: %v", e.key, err)
	}
}
