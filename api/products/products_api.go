package products

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
	"phuler.GO/core/cache"
	"phuler.GO/filter"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

// derivedTTL is how long a derived product list stays cached. The catalog
// is immutable between imports, so this only bounds memory.
const derivedTTL = 300

func RegisterProductRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/products")

	// GET /api/products — filtered, sorted product list. Query params are
	// the shareable filter URL params (category, material, minPrice, ...).
	g.GET("", func(c echo.Context) error {
		st := filter.FromQuery(c.QueryParams())
		key := "derived:" + filter.CanonicalQuery(st)

		ch := cache.GetInstance()
		if v, ok := ch.Get(key); ok {
			return c.JSON(http.StatusOK, v)
		}

		items := filter.Derive(deps.Catalog.Products(), st)
		resp := echo.Map{
			"items":   items,
			"total":   len(items),
			"filters": st,
			"query":   filter.CanonicalQuery(st),
			"facets": echo.Map{
				"categories":  deps.Catalog.Categories(),
				"collections": deps.Catalog.Collections(),
				"materials":   deps.Catalog.Materials(),
			},
		}
		ch.Set(key, resp, derivedTTL, []string{"catalog"})
		return c.JSON(http.StatusOK, resp)
	})

	// GET /api/products/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		p := deps.Catalog.ByID(uint(id))
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})
}
