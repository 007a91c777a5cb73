package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"country_atlas_go/models"
	"country_atlas_go/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusHandler(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		setupTestDB(t)

		_, c, rec := setupEcho(http.MethodGet, "/status", nil)

		err := StatusHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var status models.RefreshStatus
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, int64(0), status.TotalCountries)
		assert.Nil(t, status.LastRefreshedAt)
	})

	t.Run("NullTimestampInJSON", func(t *testing.T) {
		setupTestDB(t)

		_, c, rec := setupEcho(http.MethodGet, "/status", nil)

		err := StatusHandler(c)
		assert.NoError(t, err)
		assert.Contains(t, rec.Body.String(), `"last_refreshed_at":null`)
	})

	t.Run("PrimedFromStoreOnStartup", func(t *testing.T) {
		testDB := setupTestDB(t)
		seedCountry(t, testDB, "Japan", "Asia", "JPY", 125836021, 9e11)
		seedCountry(t, testDB, "Germany", "Europe", "EUR", 83240525, 8e11)

		// Simulates a restart after the records were written
		services.InitStatus(testDB)

		_, c, rec := setupEcho(http.MethodGet, "/status", nil)

		err := StatusHandler(c)
		assert.NoError(t, err)

		var status models.RefreshStatus
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, int64(2), status.TotalCountries)
		assert.NotNil(t, status.LastRefreshedAt)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("Connected", func(t *testing.T) {
		setupTestDB(t)

		_, c, rec := setupEcho(http.MethodGet, "/health", nil)

		err := HealthHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
		assert.Equal(t, "Connected", resp["database"])
		assert.NotEmpty(t, resp["timestamp"])
	})

	t.Run("Disconnected", func(t *testing.T) {
		testDB := setupTestDB(t)
		sqlDB, err := testDB.DB()
		assert.NoError(t, err)
		sqlDB.Close()

		_, c, rec := setupEcho(http.MethodGet, "/health", nil)

		err = HealthHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Disconnected", resp["database"])
	})
}
