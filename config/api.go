package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Storefront paths are public (guest browsing and checkout);
	// admin endpoints like /api/catalog/import stay authenticated.
	return []string{
		"/api/products",
		"/api/products/:id",
		"/api/search",
		"/api/cart",
		"/api/cart/:itemId",
		"/api/wishlist",
		"/api/wishlist/:id",
		"/api/toasts",
		"/graphql",
	}
}
