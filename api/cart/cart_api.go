package cart

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
	"phuler.GO/session"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

type addRequest struct {
	ProductID       uint              `json:"productId"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions"`
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func cartResponse(s *session.Session) echo.Map {
	return echo.Map{
		"items":      s.Cart.Items(),
		"subtotal":   s.Cart.Subtotal(),
		"count":      s.Cart.Count(),
		"openDrawer": s.Cart.ConsumeOpenIntent(),
	}
}

func RegisterCartRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/cart")

	// GET /api/cart — current line items and aggregates.
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, cartResponse(deps.Session(c)))
	})

	// POST /api/cart — add a product (quantity defaults to 1).
	g.POST("", func(c echo.Context) error {
		var body addRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}
		p := deps.Catalog.ByID(body.ProductID)
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		s := deps.Session(c)
		item, err := s.Cart.AddToCart(p, body.Quantity, body.SelectedOptions)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		resp := cartResponse(s)
		resp["added"] = item
		return c.JSON(http.StatusOK, resp)
	})

	// PATCH /api/cart/:itemId — update a line item's quantity. Quantities
	// below 1 and unknown ids are no-ops, mirroring the engine.
	g.PATCH("/:itemId", func(c echo.Context) error {
		var body updateRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := deps.Session(c)
		s.Cart.UpdateQuantity(c.Param("itemId"), body.Quantity)
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	// DELETE /api/cart/:itemId — remove a line item (idempotent).
	g.DELETE("/:itemId", func(c echo.Context) error {
		s := deps.Session(c)
		s.Cart.RemoveFromCart(c.Param("itemId"))
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	// DELETE /api/cart — clear the cart and its durable record.
	g.DELETE("", func(c echo.Context) error {
		s := deps.Session(c)
		s.Cart.ClearCart()
		return c.JSON(http.StatusOK, cartResponse(s))
	})
}
