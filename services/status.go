package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"country_atlas_go/models"

	"gorm.io/gorm"
)

// statusTracker is the process-wide refresh snapshot. The countries table
// stays the source of truth; the tracker only caches the last computed view so
// GET /status is a read lock away.
type statusTracker struct {
	mu              sync.RWMutex
	totalCountries  int64
	lastRefreshedAt *time.Time
}

var refreshStatus statusTracker

// CurrentStatus returns the cached snapshot.
func CurrentStatus() models.RefreshStatus {
	refreshStatus.mu.RLock()
	defer refreshStatus.mu.RUnlock()

	return models.RefreshStatus{
		TotalCountries:  refreshStatus.totalCountries,
		LastRefreshedAt: refreshStatus.lastRefreshedAt,
	}
}

// RecomputeStatus re-counts the store and updates the snapshot. A nil
// refreshedAt keeps the previous timestamp, which is what delete paths want;
// the refresh cycle passes its completion time.
func RecomputeStatus(dbConn *gorm.DB, refreshedAt *time.Time) (models.RefreshStatus, error) {
	var total int64
	if err := dbConn.Model(&models.Country{}).Count(&total).Error; err != nil {
		return models.RefreshStatus{}, fmt.Errorf("failed to count countries: %w", err)
	}

	refreshStatus.mu.Lock()
	refreshStatus.totalCountries = total
	if refreshedAt != nil {
		t := refreshedAt.UTC()
		refreshStatus.lastRefreshedAt = &t
	}
	snapshot := models.RefreshStatus{
		TotalCountries:  refreshStatus.totalCountries,
		LastRefreshedAt: refreshStatus.lastRefreshedAt,
	}
	refreshStatus.mu.Unlock()

	return snapshot, nil
}

// InitStatus primes the snapshot from the store on startup. The refresh
// timestamp is re-derived from the newest stored record when any exist and
// stays null otherwise.
func InitStatus(dbConn *gorm.DB) {
	var newest models.Country
	err := dbConn.Order("last_refreshed_at DESC").First(&newest).Error

	var refreshedAt *time.Time
	switch {
	case err == nil:
		t := newest.LastRefreshedAt
		refreshedAt = &t
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Empty store, snapshot starts at zero
	default:
		log.Printf("[WARNING] Failed to read newest country record: %v", err)
	}

	if _, err := RecomputeStatus(dbConn, refreshedAt); err != nil {
		log.Printf("[WARNING] Failed to prime refresh status: %v", err)
	}
}
