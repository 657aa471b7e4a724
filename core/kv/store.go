// Package kv provides the durable key-value storage the cart and wishlist
// collections persist into. Any backend with the Store contract is
// substitutable: the engines only ever read a whole collection on construction
// and rewrite it after every mutation.
package kv

import (
	"encoding/json"
	"log"
)

// Store is a minimal durable string key-value store.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)
	// Set writes a value for a key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes a key. Removing an absent key is not an error.
	Remove(key string) error
}

// LoadCollection reads the JSON list stored under key into dest (a pointer to
// a slice). Absent keys and corrupt payloads both leave dest empty — a broken
// record is never fatal, it is logged and treated as an empty collection.
func LoadCollection(s Store, key string, dest interface{}) {
	raw, ok := s.Get(key)
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("kv: discarding corrupt record %q: %v", key, err)
	}
}

// SaveCollection serializes items and writes them under key. Called after
// every mutating operation on the owning collection, not batched, so a crash
// loses at most one mutation.
func SaveCollection(s Store, key string, items interface{}) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}
