package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"country_atlas_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func setupRenderTestDB(t *testing.T) *gorm.DB {
	dsn := "file:render_" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Country{})
	assert.NoError(t, err)

	return db
}

func useTempStorage(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "render_test")
	assert.NoError(t, err)

	old := Storage
	Storage = NewLocalStorage(tempDir)
	t.Cleanup(func() {
		Storage = old
		os.RemoveAll(tempDir)
	})
}

func TestRenderSummaryImage_ProducesPNG(t *testing.T) {
	refreshedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	status := models.RefreshStatus{TotalCountries: 2, LastRefreshedAt: &refreshedAt}
	records := []models.Country{
		{Name: "Japan", EstimatedGDP: 2.5e12},
		{Name: "A Country With A Very Long Name Indeed", EstimatedGDP: 1.1e12},
	}

	data, err := RenderSummaryImage(status, records)

	assert.NoError(t, err)
	assert.True(t, len(data) > len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestRenderSummaryImage_EmptyStatus(t *testing.T) {
	// A never-refreshed snapshot still renders
	data, err := RenderSummaryImage(models.RefreshStatus{}, nil)

	assert.NoError(t, err)
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Japan", truncateName("Japan", 20))
	assert.Equal(t, "United Kingdom of Gr", truncateName("United Kingdom of Great Britain and Northern Ireland", 20))
	assert.Equal(t, "São Tomé and Prínci", truncateName("São Tomé and Príncipe", 19))
}

func TestSummaryImage_NoRecords(t *testing.T) {
	db := setupRenderTestDB(t)
	useTempStorage(t)

	_, err := SummaryImage(context.Background(), db)

	assert.True(t, errors.Is(err, ErrNoCountriesToRender))
}

func TestSummaryImage_RendersAndCaches(t *testing.T) {
	db := setupRenderTestDB(t)
	useTempStorage(t)
	resetStatusTracker()

	db.Create(&models.Country{Name: "Japan", NameKey: "japan", EstimatedGDP: 2.5e12})

	ctx := context.Background()
	data, err := SummaryImage(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, pngMagic, data[:len(pngMagic)])

	// Second call serves the stored artifact
	found, err := Storage.Exists(ctx, SummaryImageKey)
	assert.NoError(t, err)
	assert.True(t, found)

	again, err := SummaryImage(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, data, again)
}
