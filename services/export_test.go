package services

import (
	"testing"
	"time"

	"country_atlas_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupExportTestDB(t *testing.T) *gorm.DB {
	dsn := "file:export_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Country{})
	assert.NoError(t, err)

	return db
}

func TestGenerateCountriesWorkbook(t *testing.T) {
	db := setupExportTestDB(t)

	db.Create(&models.Country{
		Name: "Japan", NameKey: "japan", Capital: "Tokyo", Region: "Asia",
		Population: 125836021, CurrencyCode: "JPY", ExchangeRate: 151.3,
		EstimatedGDP: 9e11, LastRefreshedAt: time.Now().UTC(),
	})
	db.Create(&models.Country{
		Name: "Germany", NameKey: "germany", Capital: "Berlin", Region: "Europe",
		Population: 83240525, CurrencyCode: "EUR", ExchangeRate: 0.92,
		EstimatedGDP: 8e11, LastRefreshedAt: time.Now().UTC(),
	})

	buf, err := GenerateCountriesWorkbook(db)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Countries")
	assert.NoError(t, err)
	assert.Len(t, rows, 3) // header + 2 records

	assert.Equal(t, "Name", rows[0][0])
	// Sorted by name
	assert.Equal(t, "Germany", rows[1][0])
	assert.Equal(t, "Japan", rows[2][0])
	assert.Equal(t, "JPY", rows[2][4])
}

func TestGenerateCountriesWorkbook_EmptyStore(t *testing.T) {
	db := setupExportTestDB(t)

	buf, err := GenerateCountriesWorkbook(db)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Countries")
	assert.NoError(t, err)
	assert.Len(t, rows, 1) // headers only
}
