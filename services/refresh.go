package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"country_atlas_go/config"
	"country_atlas_go/models"
	"country_atlas_go/services/upstream"

	"gorm.io/gorm"
)

// Source labels reported when a fallback chain is exhausted.
const (
	SourceStaticFallback = "static fallback"
	SourceDefaultRates   = "default rates"
)

// RefreshResult summarizes one refresh cycle.
type RefreshResult struct {
	TotalCountries  int64     `json:"total_countries"`
	Dropped         int       `json:"dropped"`
	Duplicates      int       `json:"duplicates"`
	InsertFailures  int       `json:"insert_failures"`
	CountriesSource string    `json:"countries_source"`
	RatesSource     string    `json:"rates_source"`
	CompletedAt     time.Time `json:"completed_at"`
}

// RefreshCountries runs one full refresh cycle: wipe, fetch, normalize,
// dedupe, price, insert, recompute status, re-render. Only a store failure
// during the wipe is fatal; upstream problems degrade to fallback data and
// per-record problems skip that record alone.
func RefreshCountries(dbConn *gorm.DB, cfg *config.Config) (*RefreshResult, error) {
	log.Println("[REFRESH] Starting refresh cycle")

	// 1. Clear the record set. The only fatal step of the cycle.
	if err := dbConn.Where("1 = 1").Delete(&models.Country{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear countries: %w", err)
	}

	client := upstream.NewClient(time.Duration(cfg.UpstreamTimeout) * time.Second)
	result := &RefreshResult{}

	// 2. Country payload; static fallback when every source is down.
	var records []upstream.NormalizedCountry
	raw, source, err := client.FetchCountries(cfg.CountriesAPIURLs)
	if err != nil {
		log.Printf("[REFRESH] All country sources failed, using static fallback: %v", err)
		records = upstream.FallbackCountries()
		result.CountriesSource = SourceStaticFallback
	} else {
		result.CountriesSource = source
		for _, rawRecord := range raw {
			rec, err := upstream.NormalizeCountry(rawRecord)
			if err != nil {
				result.Dropped++
				log.Printf("[REFRESH] Skipping malformed record: %v", err)
				continue
			}
			if rec == nil {
				// No usable name
				result.Dropped++
				continue
			}
			records = append(records, *rec)
		}
	}

	// 3. Exchange rates; empty table (everything resolves to 1) when every
	// source is down.
	rates, ratesSource, err := client.FetchRates(cfg.RatesAPIURLs)
	if err != nil {
		log.Printf("[REFRESH] All rate sources failed, rates default to 1: %v", err)
		rates = upstream.DefaultRateTable()
		result.RatesSource = SourceDefaultRates
	} else {
		result.RatesSource = ratesSource
	}

	// 4. Dedupe by canonical name (first occurrence wins), resolve rates,
	// estimate GDP, build rows.
	now := time.Now().UTC()
	seen := make(map[string]bool, len(records))
	countries := make([]models.Country, 0, len(records))
	for _, rec := range records {
		key := models.CountryNameKey(rec.Name)
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		rate := rates.Resolve(rec.CurrencyCode)
		countries = append(countries, models.Country{
			Name:            rec.Name,
			NameKey:         key,
			Capital:         rec.Capital,
			Region:          rec.Region,
			Population:      rec.Population,
			CurrencyCode:    rec.CurrencyCode,
			ExchangeRate:    rate,
			EstimatedGDP:    EstimateGDP(rec.Population, rate),
			FlagURL:         rec.FlagURL,
			LastRefreshedAt: now,
		})
	}

	// 5. Insert row by row; a failed row is logged and skipped, never rolled
	// back.
	for i := range countries {
		if err := dbConn.Create(&countries[i]).Error; err != nil {
			result.InsertFailures++
			log.Printf("[REFRESH] Failed to insert %s: %v", countries[i].Name, err)
		}
	}

	// 6. Snapshot from the store.
	completedAt := time.Now().UTC()
	snapshot, err := RecomputeStatus(dbConn, &completedAt)
	if err != nil {
		log.Printf("[WARNING] Failed to recompute status after refresh: %v", err)
		snapshot = models.RefreshStatus{
			TotalCountries:  int64(len(countries) - result.InsertFailures),
			LastRefreshedAt: &completedAt,
		}
	}
	result.TotalCountries = snapshot.TotalCountries
	result.CompletedAt = completedAt

	// 7. Best-effort artifacts: summary card and operator report.
	if _, err := RegenerateSummaryImage(context.Background(), dbConn); err != nil {
		log.Printf("[WARNING] Summary image render failed: %v", err)
	}
	sendRefreshReport(cfg, result)

	log.Printf("[REFRESH] Cycle complete: %d countries (%d dropped, %d duplicates, %d insert failures)",
		result.TotalCountries, result.Dropped, result.Duplicates, result.InsertFailures)

	return result, nil
}

// sendRefreshReport mails the cycle summary when a recipient is configured.
func sendRefreshReport(cfg *config.Config, result *RefreshResult) {
	if cfg.EmailTo == "" {
		return
	}
	SendEmailAsync(cfg, BuildRefreshReportEmail(cfg.EmailTo, result))
}
