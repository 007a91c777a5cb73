package jobs

import (
	"log"

	"country_atlas_go/config"
	"country_atlas_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler wires the scheduled refresh when REFRESH_SCHEDULE is set.
// Returns the running scheduler, or nil when scheduling is disabled.
func StartScheduler(database *gorm.DB, cfg *config.Config) *cron.Cron {
	if cfg.RefreshSchedule == "" {
		log.Println("[CRON] REFRESH_SCHEDULE not set, scheduled refresh disabled")
		return nil
	}

	c := cron.New()

	_, err := c.AddFunc(cfg.RefreshSchedule, func() {
		RunScheduledRefresh(database, cfg)
	})
	if err != nil {
		log.Fatalf("[CRON] Invalid REFRESH_SCHEDULE %q: %v", cfg.RefreshSchedule, err)
	}

	c.Start()
	log.Printf("[CRON] Scheduled refresh started (%s)", cfg.RefreshSchedule)

	return c
}

// RunScheduledRefresh executes one refresh cycle on behalf of the scheduler.
// A failed cycle is logged and the schedule keeps running; the next tick gets
// a fresh attempt.
func RunScheduledRefresh(database *gorm.DB, cfg *config.Config) {
	log.Println("[CRON] Running scheduled country refresh")

	result, err := services.RefreshCountries(database, cfg)
	if err != nil {
		log.Printf("[CRON] Scheduled refresh failed: %v", err)
		return
	}

	log.Printf("[CRON] Scheduled refresh complete: %d countries", result.TotalCountries)
}
