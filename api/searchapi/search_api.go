package searchapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
)

func init() {
	api.RegisterModule(RegisterSearchRoutes)
}

func RegisterSearchRoutes(apiGroup *echo.Group, deps *api.Deps) {
	// GET /api/search?q=lotus&limit=20
	apiGroup.GET("/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter is required"})
		}
		limit := 20
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		items := deps.Search.Search(c.Request().Context(), q, limit)
		return c.JSON(http.StatusOK, echo.Map{
			"items": items,
			"total": len(items),
			"query": q,
		})
	})
}
