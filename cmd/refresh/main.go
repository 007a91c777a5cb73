package main

import (
	"fmt"
	"log"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/db"
	"country_atlas_go/models"
	"country_atlas_go/services"
)

// One-shot refresh for operators and external cron. Exits non-zero only when
// the store is unreachable, matching the HTTP endpoint's failure contract.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
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

	services.InitializeStorage(cfg)
	services.InitStatus(db.DB)

	result, err := services.RefreshCountries(db.DB, cfg)
	if err != nil {
		log.Fatalf("Refresh failed: %v", err)
	}

	fmt.Println("=== Refresh Complete ===")
	fmt.Printf("Total countries:  %d\n", result.TotalCountries)
	fmt.Printf("Dropped records:  %d\n", result.Dropped)
	fmt.Printf("Duplicates:       %d\n", result.Duplicates)
	fmt.Printf("Insert failures:  %d\n", result.InsertFailures)
	fmt.Printf("Country source:   %s\n", result.CountriesSource)
	fmt.Printf("Rates source:     %s\n", result.RatesSource)
	fmt.Printf("Completed at:     %s\n", result.CompletedAt.Format(time.RFC3339))
}
