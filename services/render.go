package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"country_atlas_go/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
	"gorm.io/gorm"
)

const (
	summaryImageWidth  = 640
	summaryImageHeight = 480
	summaryTopN        = 5
	summaryNameMaxLen  = 20
)

// ErrNoCountriesToRender reports an empty record set; the image endpoint maps
// it to a 404.
var ErrNoCountriesToRender = errors.New("no countries to render")

// RenderSummaryImage draws the fixed-layout summary card and returns the PNG
// bytes. Records must arrive sorted by the caller; only the first five rows
// are drawn and names are cut at 20 characters.
func RenderSummaryImage(status models.RefreshStatus, records []models.Country) ([]byte, error) {
	dc := gg.NewContext(summaryImageWidth, summaryImageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Bitmap face, no font files to ship
	dc.SetFontFace(basicfont.Face7x13)

	y := 48.0
	dc.SetRGB(0, 0, 0)
	dc.DrawString("Country Atlas - Refresh Summary", 40, y)

	y += 12
	dc.SetLineWidth(1)
	dc.DrawLine(40, y, summaryImageWidth-40, y)
	dc.Stroke()

	y += 32
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.DrawString(fmt.Sprintf("Total countries: %d", status.TotalCountries), 40, y)

	y += 20
	refreshed := "never"
	if status.LastRefreshedAt != nil {
		refreshed = status.LastRefreshedAt.UTC().Format(time.RFC3339)
	}
	dc.DrawString(fmt.Sprintf("Last refreshed:  %s", refreshed), 40, y)

	y += 40
	dc.SetRGB(0, 0, 0)
	dc.DrawString("Top countries by estimated GDP:", 40, y)

	rows := records
	if len(rows) > summaryTopN {
		rows = rows[:summaryTopN]
	}
	for i, rec := range rows {
		y += 24
		line := fmt.Sprintf("%d. %-20s %22.0f", i+1, truncateName(rec.Name, summaryNameMaxLen), rec.EstimatedGDP)
		dc.DrawString(line, 56, y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode summary image: %w", err)
	}

	return buf.Bytes(), nil
}

// truncateName cuts a display name at max runes
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}

// SummaryImage returns the cached summary card, rendering and storing a fresh
// one when the cache is empty. An empty record set is reported as
// ErrNoCountriesToRender instead of an image.
func SummaryImage(ctx context.Context, dbConn *gorm.DB) ([]byte, error) {
	var total int64
	if err := dbConn.Model(&models.Country{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}
	if total == 0 {
		return nil, ErrNoCountriesToRender
	}

	if Storage != nil {
		data, _, err := Storage.Get(ctx, SummaryImageKey)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrArtifactNotFound) {
			log.Printf("[WARNING] Failed to read cached summary image: %v", err)
		}
	}

	return RegenerateSummaryImage(ctx, dbConn)
}

// RegenerateSummaryImage renders the card from the current record set, sorted
// by estimated GDP descending, and writes it through the artifact store.
func RegenerateSummaryImage(ctx context.Context, dbConn *gorm.DB) ([]byte, error) {
	var records []models.Country
	if err := dbConn.Order("estimated_gdp DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load countries for rendering: %w", err)
	}

	data, err := RenderSummaryImage(CurrentStatus(), records)
	if err != nil {
		return nil, err
	}

	if Storage != nil {
		if err := Storage.Put(ctx, SummaryImageKey, "image/png", data); err != nil {
			log.Printf("[WARNING] Failed to store summary image: %v", err)
		}
	}

	return data, nil
}
