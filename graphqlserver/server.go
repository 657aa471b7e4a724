// Package graphqlserver exposes the catalog and derivation engine over
// GraphQL. The products query takes the same arguments the URL filter
// parameters carry, so storefront clients can reuse their query-building.
package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"

	"phuler.GO/catalog"
	"phuler.GO/filter"
	"phuler.GO/graphql"
)

// NewSchema parses the schema against the root resolver.
func NewSchema(c *catalog.Catalog) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{Catalog: c}, gql.UseFieldResolvers())
}

// RootResolver is the root for graphql-go.
type RootResolver struct {
	Catalog *catalog.Catalog
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Category    *string
	Collection  *string
	Material    *string
	MinPrice    *int32
	MaxPrice    *int32
	OnSale      *bool
	NewArrivals *bool
	Bestsellers *bool
	Search      *string
	Sort        *string
}

func (a ProductsArgs) toState() filter.State {
	st := filter.Default()
	if a.Category != nil && *a.Category != "" {
		st.Categories = []string{*a.Category}
	}
	if a.Collection != nil && *a.Collection != "" {
		st.Collections = []string{*a.Collection}
	}
	if a.Material != nil && *a.Material != "" {
		st.Materials = []string{*a.Material}
	}
	if a.MinPrice != nil {
		st.SetPriceBound("min", int(*a.MinPrice))
	}
	if a.MaxPrice != nil {
		st.SetPriceBound("max", int(*a.MaxPrice))
	}
	if a.OnSale != nil {
		st.OnSale = *a.OnSale
	}
	if a.NewArrivals != nil {
		st.NewArrivals = *a.NewArrivals
	}
	if a.Bestsellers != nil {
		st.Bestsellers = *a.Bestsellers
	}
	if a.Search != nil {
		st.SearchQuery = *a.Search
	}
	if a.Sort != nil {
		st.SetSort(*a.Sort)
	}
	return st
}

func (r *RootResolver) Products(args ProductsArgs) *ProductListResolver {
	items := filter.Derive(r.Catalog.Products(), args.toState())
	resolvers := make([]*ProductResolver, len(items))
	for i := range items {
		resolvers[i] = &ProductResolver{p: items[i]}
	}
	return &ProductListResolver{items: resolvers}
}

func (r *RootResolver) Product(args struct{ ID int32 }) *ProductResolver {
	p := r.Catalog.ByID(uint(args.ID))
	if p == nil {
		return nil
	}
	return &ProductResolver{p: *p}
}

func (r *RootResolver) Facets() *FacetsResolver {
	return &FacetsResolver{catalog: r.Catalog}
}

// ProductListResolver resolves ProductList.
type ProductListResolver struct {
	items []*ProductResolver
}

func (r *ProductListResolver) Items() []*ProductResolver { return r.items }
func (r *ProductListResolver) TotalCount() int32         { return int32(len(r.items)) }

// FacetsResolver resolves Facets.
type FacetsResolver struct {
	catalog *catalog.Catalog
}

func (r *FacetsResolver) Categories() []string  { return r.catalog.Categories() }
func (r *FacetsResolver) Collections() []string { return r.catalog.Collections() }
func (r *FacetsResolver) Materials() []string   { return r.catalog.Materials() }

// ProductResolver resolves Product fields.
type ProductResolver struct {
	p catalog.Product
}

func (r *ProductResolver) ID() int32             { return int32(r.p.ID) }
func (r *ProductResolver) Name() string          { return r.p.Name }
func (r *ProductResolver) Category() string      { return r.p.Category }
func (r *ProductResolver) Collection() string    { return r.p.Collection }
func (r *ProductResolver) Price() float64        { return r.p.Price }
func (r *ProductResolver) SalePrice() *float64   { return r.p.SalePrice }
func (r *ProductResolver) EffectivePrice() float64 {
	return r.p.EffectivePrice()
}
func (r *ProductResolver) Material() string         { return r.p.Material }
func (r *ProductResolver) IsNew() bool              { return r.p.IsNew }
func (r *ProductResolver) IsBestseller() bool       { return r.p.IsBestseller }
func (r *ProductResolver) Rating() float64          { return r.p.Rating }
func (r *ProductResolver) ReviewCount() int32       { return int32(r.p.ReviewCount) }
func (r *ProductResolver) ShortDescription() string { return r.p.ShortDescription }
func (r *ProductResolver) Description() string      { return r.p.Description }
func (r *ProductResolver) Images() []string         { return r.p.Images }
func (r *ProductResolver) CreatedAt() string        { return r.p.CreatedAt.Format("2006-01-02") }

func (r *ProductResolver) Options() []*OptionResolver {
	out := make([]*OptionResolver, len(r.p.Options))
	for i := range r.p.Options {
		out[i] = &OptionResolver{o: r.p.Options[i]}
	}
	return out
}

// OptionResolver resolves ProductOption.
type OptionResolver struct {
	o catalog.Option
}

func (r *OptionResolver) Name() string     { return r.o.Name }
func (r *OptionResolver) Type() string     { return r.o.Type }
func (r *OptionResolver) Values() []string { return r.o.Values }
