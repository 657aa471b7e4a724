package wishlist

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
	"phuler.GO/session"
)

func init() {
	api.RegisterModule(RegisterWishlistRoutes)
}

type addRequest struct {
	ProductID uint `json:"productId"`
}

func wishlistResponse(s *session.Session) echo.Map {
	items := s.Wishlist.Items()
	return echo.Map{
		"items": items,
		"count": len(items),
	}
}

func RegisterWishlistRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/wishlist")

	// GET /api/wishlist
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, wishlistResponse(deps.Session(c)))
	})

	// POST /api/wishlist — add a product; already-present ids are no-ops.
	g.POST("", func(c echo.Context) error {
		var body addRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p := deps.Catalog.ByID(body.ProductID)
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		s := deps.Session(c)
		s.Wishlist.Add(p)
		return c.JSON(http.StatusOK, wishlistResponse(s))
	})

	// DELETE /api/wishlist/:id — remove by product id (idempotent).
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		s := deps.Session(c)
		s.Wishlist.Remove(uint(id))
		return c.JSON(http.StatusOK, wishlistResponse(s))
	})

	// DELETE /api/wishlist — clear.
	g.DELETE("", func(c echo.Context) error {
		s := deps.Session(c)
		s.Wishlist.Clear()
		return c.JSON(http.StatusOK, wishlistResponse(s))
	})
}
