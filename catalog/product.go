// Package catalog holds the immutable product catalog: the read-only input
// to the filter/sort derivation and the source of cart/wishlist snapshots.
package catalog

import (
	"fmt"
	"time"
)

// Option is a configurable product option (chain length, color, ...).
type Option struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"` // "select" or "color"
	Values []string `json:"values"`
}

// Product is one catalog record. Loaded once, never mutated.
type Product struct {
	ID                 uint               `json:"id"`
	Name               string             `json:"name"`
	Category           string             `json:"category"`
	Collection         string             `json:"collection"`
	Price              float64            `json:"price"`
	SalePrice          *float64           `json:"salePrice"`
	Images             []string           `json:"images"`
	IsNew              bool               `json:"isNew"`
	IsBestseller       bool               `json:"isBestseller"`
	Rating             float64            `json:"rating"`
	ReviewCount        int                `json:"reviewCount"`
	ReviewDistribution map[string]float64 `json:"reviewDistribution,omitempty"`
	ShortDescription   string             `json:"shortDescription"`
	Description        string             `json:"description"`
	Material           string             `json:"material"`
	Dimensions         string             `json:"dimensions,omitempty"`
	Weight             string             `json:"weight,omitempty"`
	Features           []string           `json:"features,omitempty"`
	Options            []Option           `json:"options,omitempty"`
	CreatedAt          Date               `json:"createdAt"`
}

// EffectivePrice returns the sale price when set, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// OnSale reports whether the product has a sale price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil
}

// Validate checks catalog-level invariants. Products failing validation are
// skipped at import time with a warning, not served.
func (p *Product) Validate() error {
	if p.ID == 0 {
		return fmt.Errorf("product: missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %d: missing name", p.ID)
	}
	if p.Price <= 0 {
		return fmt.Errorf("product %d: price must be positive, got %v", p.ID, p.Price)
	}
	if p.SalePrice != nil {
		if *p.SalePrice <= 0 {
			return fmt.Errorf("product %d: sale price must be positive, got %v", p.ID, *p.SalePrice)
		}
		if *p.SalePrice >= p.Price {
			return fmt.Errorf("product %d: sale price %v must be below price %v", p.ID, *p.SalePrice, p.Price)
		}
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %d: rating %v out of range", p.ID, p.Rating)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("product %d: at least one image required", p.ID)
	}
	return nil
}

// Date is a day-granularity timestamp stored as "2006-01-02" in JSON,
// matching the catalog data format.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
