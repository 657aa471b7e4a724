package catalogimport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"phuler.GO/api"
	"phuler.GO/core/cache"
	catalogService "phuler.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterImportRoutes)
}

func RegisterImportRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/catalog")

	// POST /api/catalog/import – bulk product upsert (auth required via /api middleware)
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		if deps.DB == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "catalog database not configured"})
		}

		var body struct {
			Items     []map[string]interface{} `json:"items"`
			BatchSize int                      `json:"batch_size"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		res, err := catalogService.ImportJSON(deps.DB, body.Items, body.BatchSize)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		// Imported rows invalidate every cached derivation.
		cache.GetInstance().DeleteByTag("catalog")

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            res.Imported,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	})
}
