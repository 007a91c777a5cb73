package services

import (
	"testing"
	"time"

	"country_atlas_go/config"

	"github.com/stretchr/testify/assert"
)

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{
		To:       []string{"ops@example.com"},
		Subject:  "Test",
		TextBody: "body",
	})

	// Test mode logs instead of sending; never an error
	assert.NoError(t, err)
}

func TestSendEmail_MissingAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: ""}

	err := SendEmail(cfg, &Email{
		To:       []string{"ops@example.com"},
		Subject:  "Test",
		TextBody: "body",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestSendEmail_RequiresBody(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: "re_test_key"}

	err := SendEmail(cfg, &Email{
		To:      []string{"ops@example.com"},
		Subject: "Empty",
	})

	assert.Error(t, err)
}

func TestBuildRefreshReportEmail(t *testing.T) {
	result := &RefreshResult{
		TotalCountries:  250,
		Dropped:         3,
		Duplicates:      1,
		InsertFailures:  0,
		CountriesSource: "https://restcountries.com/v3.1/all",
		RatesSource:     "https://open.er-api.com/v6/latest/USD",
		CompletedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	email := BuildRefreshReportEmail("ops@example.com", result)

	assert.Equal(t, []string{"ops@example.com"}, email.To)
	assert.Contains(t, email.Subject, "250")
	assert.Contains(t, email.TextBody, "Dropped records:  3")
	assert.Contains(t, email.TextBody, "2026-08-01T12:00:00Z")
	assert.Contains(t, email.HTMLBody, "<strong>250</strong>")
	assert.Contains(t, email.HTMLBody, "restcountries.com")
}
