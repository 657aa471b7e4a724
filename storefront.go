//go:build !cli
// +build !cli

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"phuler.GO/api"
	_ "phuler.GO/api/cart"
	_ "phuler.GO/api/catalogimport"
	_ "phuler.GO/api/graphql"
	_ "phuler.GO/api/products"
	_ "phuler.GO/api/searchapi"
	_ "phuler.GO/api/toasts"
	_ "phuler.GO/api/wishlist"
	"phuler.GO/config"
	"phuler.GO/cron"
	_ "phuler.GO/custom"
	"phuler.GO/search"
	catalogService "phuler.GO/service/catalog"
	"phuler.GO/session"
)

func getAuthMiddleware() echo.MiddlewareFunc {
	skipPaths := config.GetAuthSkipperPaths()
	skipper := func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		apiKey := os.Getenv("API_KEY")
		return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == apiKey, nil
			},
			Skipper: skipper,
		})
	default:
		return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Validator: func(username, password string, c echo.Context) (bool, error) {
				return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
			},
			Skipper: skipper,
		})
	}
}

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, redis persistence disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, redis persistence disabled."
		}
	}
	log.Println(redisStatus)

	// Catalog: DB-backed when rows exist, embedded seed otherwise.
	db, err := config.NewDB()
	if err != nil {
		log.Printf("catalog DB unavailable (%v), running from embedded seed", err)
		db = nil
	}
	cat, err := catalogService.LoadCatalog(db)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products", cat.Len())

	// Session state: durable store + in-memory manager.
	store := config.NewSessionStore()
	sessions := session.NewManager(store)

	deps := &api.Deps{
		Catalog:  cat,
		Sessions: sessions,
		Search:   search.NewService(cat),
		DB:       db,
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(getAuthMiddleware())

	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	// Evict idle sessions hourly; durable cart/wishlist records survive.
	cron.Register("sessionsweep", "@hourly", func(...string) {
		evicted := sessions.Sweep(24 * time.Hour)
		if evicted > 0 {
			log.Printf("session sweep: evicted %d idle sessions", evicted)
		}
	})
	cron.StartCron()

	fig := figure.NewFigure("Phuler ->", "slant", true)
	fig.Print()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Storefront API running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
