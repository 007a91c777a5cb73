package handlers

import (
	"net/http"
	"time"

	"country_atlas_go/db"
	"country_atlas_go/services"

	"github.com/labstack/echo/v4"
)

// StatusHandler returns the cached refresh snapshot
// GET /status
func StatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, services.CurrentStatus())
}

// HealthHandler reports process liveness and store reachability
// GET /health
func HealthHandler(c echo.Context) error {
	database := "Connected"
	if err := db.Ping(); err != nil {
		database = "Disconnected"
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
