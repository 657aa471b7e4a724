package toasts

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
)

func init() {
	api.RegisterModule(RegisterToastRoutes)
}

func RegisterToastRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/toasts")

	// GET /api/toasts — active notifications for the session.
	g.GET("", func(c echo.Context) error {
		s := deps.Session(c)
		return c.JSON(http.StatusOK, echo.Map{"toasts": s.Toasts.Active()})
	})

	// DELETE /api/toasts/:id — dismiss early, cancelling the expiry timer.
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid toast id"})
		}
		s := deps.Session(c)
		s.Toasts.Dismiss(id)
		return c.JSON(http.StatusOK, echo.Map{"toasts": s.Toasts.Active()})
	})
}
