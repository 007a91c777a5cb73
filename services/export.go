package services

import (
	"bytes"
	"fmt"
	"time"

	"country_atlas_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GenerateCountriesWorkbook builds an XLSX snapshot of the mirror, one row per
// country sorted by name. An empty record set yields a headers-only sheet.
func GenerateCountriesWorkbook(dbConn *gorm.DB) (*bytes.Buffer, error) {
	var countries []models.Country
	if err := dbConn.Order("name_key ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Countries"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Name",          // A
		"Capital",       // B
		"Region",        // C
		"Population",    // D
		"Currency",      // E
		"Exchange Rate", // F
		"Estimated GDP", // G
		"Flag URL",      // H
		"Refreshed At",  // I
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)
	f.SetColWidth(sheet, "A", "C", 24)
	f.SetColWidth(sheet, "D", "I", 18)

	for i, c := range countries {
		row := i + 2
		values := []interface{}{
			c.Name,
			c.Capital,
			c.Region,
			c.Population,
			c.CurrencyCode,
			c.ExchangeRate,
			c.EstimatedGDP,
			c.FlagURL,
			c.LastRefreshedAt.UTC().Format(time.RFC3339),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf, nil
}
