package main

import (
	"log"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/db"
	"country_atlas_go/handlers"
	"country_atlas_go/middleware"
	"country_atlas_go/models"
	"country_atlas_go/services"
	"country_atlas_go/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (Turso remote when configured, local file otherwise)
	var err error
	if cfg.TursoDatabaseURL != "" {
		err = db.InitializeRemote(cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment)
	} else {
		err = db.Initialize(cfg.DBPath, cfg.Environment)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Artifact storage (local cache dir, or R2 when configured)
	services.InitializeStorage(cfg)

	// Prime the refresh status snapshot from the store
	services.InitStatus(db.DB)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Routes
	refreshLimiter := middleware.NewRefreshRateLimiter(
		cfg.RefreshRateLimit,
		time.Duration(cfg.RefreshRateWindow)*time.Second,
	)

	e.POST("/countries/refresh", handlers.RefreshCountriesHandler, refreshLimiter.Middleware())
	e.GET("/countries", handlers.ListCountriesHandler)
	e.GET("/countries/image", handlers.CountryImageHandler)
	e.GET("/countries/export", handlers.ExportCountriesHandler)
	e.GET("/countries/:name", handlers.GetCountryHandler)
	e.DELETE("/countries/:name", handlers.DeleteCountryHandler)
	e.GET("/status", handlers.StatusHandler)
	e.GET("/health", handlers.HealthHandler)

	// Scheduled refresh (disabled unless REFRESH_SCHEDULE is set)
	if scheduler := jobs.StartScheduler(db.DB, cfg); scheduler != nil {
		defer scheduler.Stop()
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
