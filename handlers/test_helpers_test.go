package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/db"
	"country_atlas_go/models"
	"country_atlas_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	err = testDB.AutoMigrate(&models.Country{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	services.InitStatus(testDB)

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})

	return e, c, rec
}

// seedCountry inserts one record directly, bypassing the refresh cycle
func seedCountry(t *testing.T, testDB *gorm.DB, name, region, currency string, population int64, gdp float64) models.Country {
	country := models.Country{
		Name:            name,
		Capital:         "Unknown",
		Region:          region,
		Population:      population,
		CurrencyCode:    currency,
		ExchangeRate:    1,
		EstimatedGDP:    gdp,
		LastRefreshedAt: time.Now().UTC(),
	}
	assert.NoError(t, testDB.Create(&country).Error)
	return country
}
