package catalog

import (
	"encoding/json"
	"log"
	"sort"

	_ "embed"
)

//go:embed data/products.json
var seedData []byte

// Catalog is an ordered, id-indexed product collection. The order of the
// underlying slice is the "featured" order the derivation engine preserves.
type Catalog struct {
	products []Product
	byID     map[uint]*Product
}

// New builds a catalog from products, dropping records that fail validation.
// Duplicate ids keep the first occurrence.
func New(products []Product) *Catalog {
	c := &Catalog{byID: make(map[uint]*Product, len(products))}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			log.Printf("catalog: skipping invalid product: %v", err)
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			log.Printf("catalog: skipping duplicate product id %d", p.ID)
			continue
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = &c.products[len(c.products)-1]
	}
	// byID pointers must survive append reallocation
	for i := range c.products {
		c.byID[c.products[i].ID] = &c.products[i]
	}
	return c
}

// LoadSeed builds the catalog from the embedded seed data.
func LoadSeed() (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(seedData, &products); err != nil {
		return nil, err
	}
	return New(products), nil
}

// Products returns the catalog in featured order. The slice is a copy;
// the records themselves are shared and must not be mutated.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID returns the product with the given id, or nil.
func (c *Catalog) ByID(id uint) *Product {
	return c.byID[id]
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Categories returns the distinct category tags, sorted.
func (c *Catalog) Categories() []string {
	return c.distinct(func(p *Product) string { return p.Category })
}

// Collections returns the distinct collection tags, sorted.
func (c *Catalog) Collections() []string {
	return c.distinct(func(p *Product) string { return p.Collection })
}

// Materials returns the distinct materials, sorted.
func (c *Catalog) Materials() []string {
	return c.distinct(func(p *Product) string { return p.Material })
}

func (c *Catalog) distinct(field func(*Product) string) []string {
	set := make(map[string]bool)
	for i := range c.products {
		if v := field(&c.products[i]); v != "" {
			set[v] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
