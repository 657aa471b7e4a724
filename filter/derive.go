package filter

import (
	"sort"
	"strings"

	"phuler.GO/catalog"
)

// Derive maps the catalog through the filter pipeline and sort stage.
// Pure: neither input is mutated. All filter stages are conjunctive; within
// a facet, selected values are alternatives (OR). The sort is stable so ties
// keep catalog order, and "featured" preserves the input order entirely.
func Derive(products []catalog.Product, st State) []catalog.Product {
	result := make([]catalog.Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(st.SearchQuery))
	for i := range products {
		p := &products[i]
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if len(st.Categories) > 0 && !contains(st.Categories, p.Category) {
			continue
		}
		if len(st.Collections) > 0 && !contains(st.Collections, p.Collection) {
			continue
		}
		if len(st.Materials) > 0 && !contains(st.Materials, p.Material) {
			continue
		}
		price := p.EffectivePrice()
		if price < float64(st.PriceRange.Min) || price > float64(st.PriceRange.Max) {
			continue
		}
		if st.OnSale && !p.OnSale() {
			continue
		}
		if st.NewArrivals && !p.IsNew {
			continue
		}
		if st.Bestsellers && !p.IsBestseller {
			continue
		}
		result = append(result, products[i])
	}
	sortProducts(result, st.SortBy)
	return result
}

// matchesQuery is the case-insensitive substring search over name, category,
// collection and short description.
func matchesQuery(p *catalog.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query) ||
		strings.Contains(strings.ToLower(p.Collection), query) ||
		strings.Contains(strings.ToLower(p.ShortDescription), query)
}

func sortProducts(items []catalog.Product, sortBy string) {
	switch sortBy {
	case SortPriceLowHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EffectivePrice() < items[j].EffectivePrice()
		})
	case SortPriceHighLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EffectivePrice() > items[j].EffectivePrice()
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt.Time)
		})
	case SortBestselling:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ReviewCount > items[j].ReviewCount
		})
	case SortTopRated:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	default:
		// featured: keep catalog order
	}
}
