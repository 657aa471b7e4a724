package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// URL parameter names recognized by FromQuery and emitted by ToQuery.
const (
	paramCategory    = "category"
	paramCollection  = "collection"
	paramMaterial    = "material"
	paramMinPrice    = "minPrice"
	paramMaxPrice    = "maxPrice"
	paramOnSale      = "onSale"
	paramNew         = "new"
	paramBestsellers = "bestsellers"
	paramSort        = "sort"
	paramQuery       = "q"
)

// FromQuery parses URL query parameters into a State. Each field falls back
// to its default independently, so one malformed value never discards the
// rest of the URL.
//
// Note the asymmetry inherited from the storefront: category and collection
// arrive as a single value (one-element set) while material is
// comma-separated. The in-app UI allows multi-select for all three, but only
// a lone category/collection selection survives a URL round-trip.
func FromQuery(values url.Values) State {
	st := Default()
	if v := values.Get(paramCategory); v != "" {
		st.Categories = []string{v}
	}
	if v := values.Get(paramCollection); v != "" {
		st.Collections = []string{v}
	}
	if v := values.Get(paramMaterial); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				st.Materials = append(st.Materials, m)
			}
		}
	}
	if v := values.Get(paramMinPrice); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= PriceMin && n <= PriceMax {
			st.PriceRange.Min = n
		}
	}
	if v := values.Get(paramMaxPrice); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= PriceMin && n <= PriceMax {
			st.PriceRange.Max = n
		}
	}
	if st.PriceRange.Min > st.PriceRange.Max {
		st.PriceRange = PriceRange{Min: PriceMin, Max: PriceMax}
	}
	st.OnSale = values.Get(paramOnSale) == "true"
	st.NewArrivals = values.Get(paramNew) == "true"
	st.Bestsellers = values.Get(paramBestsellers) == "true"
	if v := values.Get(paramSort); validSorts[v] {
		st.SortBy = v
	}
	st.SearchQuery = values.Get(paramQuery)
	return st
}

// ToQuery serializes a State into URL query parameters, emitting only values
// that differ from the defaults so shared URLs stay minimal. Category and
// collection are emitted only when exactly one value is selected (see the
// asymmetry note on FromQuery). Parsing an emitted query and re-emitting it
// yields the same query.
func ToQuery(st State) url.Values {
	values := url.Values{}
	if len(st.Categories) == 1 {
		values.Set(paramCategory, st.Categories[0])
	}
	if len(st.Collections) == 1 {
		values.Set(paramCollection, st.Collections[0])
	}
	if len(st.Materials) > 0 {
		values.Set(paramMaterial, strings.Join(st.Materials, ","))
	}
	if st.PriceRange.Min > PriceMin {
		values.Set(paramMinPrice, strconv.Itoa(st.PriceRange.Min))
	}
	if st.PriceRange.Max < PriceMax {
		values.Set(paramMaxPrice, strconv.Itoa(st.PriceRange.Max))
	}
	if st.OnSale {
		values.Set(paramOnSale, "true")
	}
	if st.NewArrivals {
		values.Set(paramNew, "true")
	}
	if st.Bestsellers {
		values.Set(paramBestsellers, "true")
	}
	if st.SortBy != SortFeatured {
		values.Set(paramSort, st.SortBy)
	}
	if st.SearchQuery != "" {
		values.Set(paramQuery, st.SearchQuery)
	}
	return values
}

// CanonicalQuery is the sorted-key encoding of ToQuery. Callers compare it
// against the current URL before writing so that mirroring state into the
// URL never triggers a parse-update feedback loop. Also used as the cache
// key for derived product lists.
func CanonicalQuery(st State) string {
	return ToQuery(st).Encode() // url.Values.Encode sorts by key
}
