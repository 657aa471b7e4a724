// Package filter derives the visible product list from the catalog and the
// session's filter state, and reconciles that state with URL query parameters.
package filter

// Sort keys accepted by the derivation engine.
const (
	SortFeatured     = "featured"
	SortNewest       = "newest"
	SortBestselling  = "bestselling"
	SortTopRated     = "top-rated"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
)

// Price range bounds and the slider step used when clamping.
const (
	PriceMin  = 0
	PriceMax  = 10000
	PriceStep = 500
)

var validSorts = map[string]bool{
	SortFeatured:     true,
	SortNewest:       true,
	SortBestselling:  true,
	SortTopRated:     true,
	SortPriceLowHigh: true,
	SortPriceHighLow: true,
}

// PriceRange is an inclusive effective-price window.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// State is the full set of active filters for one session. The in-memory
// state is canonical; the URL is only a serialization target and parse
// source (see FromQuery/ToQuery).
type State struct {
	Categories  []string   `json:"categories"`
	Collections []string   `json:"collections"`
	Materials   []string   `json:"materials"`
	OnSale      bool       `json:"onSale"`
	NewArrivals bool       `json:"newArrivals"`
	Bestsellers bool       `json:"bestsellers"`
	PriceRange  PriceRange `json:"priceRange"`
	SortBy      string     `json:"sortBy"`
	SearchQuery string     `json:"searchQuery"`
}

// Default returns the no-filter state: empty facets, full price range,
// featured order, empty query.
func Default() State {
	return State{
		PriceRange: PriceRange{Min: PriceMin, Max: PriceMax},
		SortBy:     SortFeatured,
	}
}

// Reset restores the default state in place.
func (s *State) Reset() {
	*s = Default()
}

// Toggle adds value to the named facet when absent, removes it when present.
// Facet is one of "categories", "collections", "materials".
func (s *State) Toggle(facet, value string) {
	var set *[]string
	switch facet {
	case "categories":
		set = &s.Categories
	case "collections":
		set = &s.Collections
	case "materials":
		set = &s.Materials
	default:
		return
	}
	for i, v := range *set {
		if v == value {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return
		}
	}
	*set = append(*set, value)
}

// SetPriceBound updates one bound of the price range, clamped so that
// min <= max-step and both bounds stay inside [PriceMin, PriceMax].
// Bound is "min" or "max".
func (s *State) SetPriceBound(bound string, value int) {
	switch bound {
	case "min":
		if value > s.PriceRange.Max-PriceStep {
			value = s.PriceRange.Max - PriceStep
		}
	case "max":
		if value < s.PriceRange.Min+PriceStep {
			value = s.PriceRange.Min + PriceStep
		}
	default:
		return
	}
	if value < PriceMin {
		value = PriceMin
	}
	if value > PriceMax {
		value = PriceMax
	}
	if bound == "min" {
		s.PriceRange.Min = value
	} else {
		s.PriceRange.Max = value
	}
}

// SetSort updates the sort key; unknown keys are ignored.
func (s *State) SetSort(key string) {
	if validSorts[key] {
		s.SortBy = key
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
