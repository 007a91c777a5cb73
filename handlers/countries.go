package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/db"
	"country_atlas_go/models"
	"country_atlas_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrorResponse is the JSON envelope for every handler-level error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// sortClauses whitelists the accepted sort parameter values. Anything else is
// a 400, not a silent default.
var sortClauses = map[string]string{
	"gdp_desc":  "estimated_gdp DESC",
	"gdp_asc":   "estimated_gdp ASC",
	"name_asc":  "name COLLATE NOCASE ASC",
	"name_desc": "name COLLATE NOCASE DESC",
}

// RefreshCountriesHandler runs one full refresh cycle
// POST /countries/refresh
func RefreshCountriesHandler(c echo.Context) error {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		cfg = config.Load()
	}

	result, err := services.RefreshCountries(db.DB, cfg)
	if err != nil {
		// Only a store failure during the wipe reaches this branch; upstream
		// problems are absorbed inside the cycle.
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not refresh country data",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":           "Country data refreshed successfully",
		"total_countries":   result.TotalCountries,
		"last_refreshed_at": result.CompletedAt.Format(time.RFC3339),
	})
}

// ListCountriesHandler returns the current record set with optional filters
// GET /countries?region=&currency=&sort=
func ListCountriesHandler(c echo.Context) error {
	query := db.DB.Model(&models.Country{})

	if region := c.QueryParam("region"); region != "" {
		query = query.Where("LOWER(region) LIKE ?", "%"+strings.ToLower(region)+"%")
	}
	if currency := c.QueryParam("currency"); currency != "" {
		query = query.Where("currency_code = ?", strings.ToUpper(currency))
	}

	sort := c.QueryParam("sort")
	if sort == "" {
		sort = "name_asc"
	}
	clause, ok := sortClauses[sort]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid sort parameter",
			Details: "sort must be one of: gdp_desc, gdp_asc, name_asc, name_desc",
		})
	}

	countries := []models.Country{}
	if err := query.Order(clause).Find(&countries).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not fetch countries",
		})
	}

	return c.JSON(http.StatusOK, countries)
}

// GetCountryHandler returns one country by name, case-insensitively
// GET /countries/:name
func GetCountryHandler(c echo.Context) error {
	name := c.Param("name")

	var country models.Country
	err := db.DB.Where("name_key = ?", models.CountryNameKey(name)).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "Country not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not fetch country",
		})
	}

	return c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler removes one country by name and recomputes the status
// snapshot
// DELETE /countries/:name
func DeleteCountryHandler(c echo.Context) error {
	name := c.Param("name")

	var country models.Country
	err := db.DB.Where("name_key = ?", models.CountryNameKey(name)).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "Country not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not fetch country",
		})
	}

	if err := db.DB.Delete(&country).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not delete country",
		})
	}

	// Keep the last refresh timestamp; only the count changed
	if _, err := services.RecomputeStatus(db.DB, nil); err != nil {
		c.Logger().Warnf("Failed to recompute status after delete: %v", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Country deleted successfully",
		"name":    country.Name,
	})
}

// CountryImageHandler serves the cached summary card, rendering it on demand
// when the cache is empty
// GET /countries/image
func CountryImageHandler(c echo.Context) error {
	data, err := services.SummaryImage(c.Request().Context(), db.DB)
	if err != nil {
		if errors.Is(err, services.ErrNoCountriesToRender) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Summary image not found",
				Details: "No country data available; run a refresh first",
			})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not generate summary image",
		})
	}

	return c.Blob(http.StatusOK, "image/png", data)
}

// ExportCountriesHandler streams the record set as an XLSX workbook
// GET /countries/export
func ExportCountriesHandler(c echo.Context) error {
	buf, err := services.GenerateCountriesWorkbook(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Details: "Could not generate export",
		})
	}

	filename := "countries_" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
