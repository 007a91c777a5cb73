package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/db"
	"country_atlas_go/models"
	"country_atlas_go/services"

	"github.com/brianvoe/gofakeit/v6"
)

// Development seeder: fills the store with fake countries so list, sort,
// export and image endpoints can be exercised without touching the real
// upstreams. Refuses to run against a production environment.
func main() {
	count := flag.Int("count", 50, "number of fake countries to generate")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if cfg.Environment == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Country{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool)
	created := 0

	// gofakeit draws from a finite country list; cap the attempts so an
	// oversized -count cannot spin forever on duplicates
	for attempts := 0; created < *count && attempts < *count*20; attempts++ {
		name := gofakeit.Country()
		key := models.CountryNameKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		population := int64(gofakeit.Number(100_000, 1_400_000_000))
		rate := gofakeit.Float64Range(0.1, 150)
		country := models.Country{
			Name:            name,
			NameKey:         key,
			Capital:         gofakeit.City(),
			Region:          gofakeit.RandomString([]string{"Africa", "Americas", "Asia", "Europe", "Oceania"}),
			Population:      population,
			CurrencyCode:    strings.ToUpper(gofakeit.CurrencyShort()),
			ExchangeRate:    rate,
			EstimatedGDP:    services.EstimateGDP(population, rate),
			FlagURL:         gofakeit.URL(),
			LastRefreshedAt: now,
		}

		if err := db.DB.Create(&country).Error; err != nil {
			log.Printf("Failed to insert %s: %v", name, err)
			continue
		}
		created++
	}

	services.InitStatus(db.DB)

	log.Printf("Seeded %d fake countries into %s", created, cfg.DBPath)
}
