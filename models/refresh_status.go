package models

import "time"

// RefreshStatus is the process-wide snapshot served by GET /status. It is
// never persisted: the tracker recomputes it from the countries table, and
// LastRefreshedAt stays nil until the first successful refresh.
type RefreshStatus struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}
