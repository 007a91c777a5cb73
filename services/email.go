package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"country_atlas_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Prefer HTML if available
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine
// This keeps the refresh cycle from blocking on the mail provider
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildRefreshReportEmail creates the post-refresh report for operators
func BuildRefreshReportEmail(to string, result *RefreshResult) *Email {
	completedAt := result.CompletedAt.UTC().Format(time.RFC3339)

	var text strings.Builder
	fmt.Fprintf(&text, "Country data refresh completed at %s.\n\n", completedAt)
	fmt.Fprintf(&text, "Total countries:  %d\n", result.TotalCountries)
	fmt.Fprintf(&text, "Dropped records:  %d\n", result.Dropped)
	fmt.Fprintf(&text, "Duplicates:       %d\n", result.Duplicates)
	fmt.Fprintf(&text, "Insert failures:  %d\n", result.InsertFailures)
	fmt.Fprintf(&text, "Country source:   %s\n", result.CountriesSource)
	fmt.Fprintf(&text, "Rates source:     %s\n", result.RatesSource)

	var html strings.Builder
	html.WriteString("<h2>Country data refresh completed</h2>")
	fmt.Fprintf(&html, "<p>Completed at %s</p>", completedAt)
	html.WriteString("<ul>")
	fmt.Fprintf(&html, "<li>Total countries: <strong>%d</strong></li>", result.TotalCountries)
	fmt.Fprintf(&html, "<li>Dropped records: %d</li>", result.Dropped)
	fmt.Fprintf(&html, "<li>Duplicates: %d</li>", result.Duplicates)
	fmt.Fprintf(&html, "<li>Insert failures: %d</li>", result.InsertFailures)
	fmt.Fprintf(&html, "<li>Country source: %s</li>", result.CountriesSource)
	fmt.Fprintf(&html, "<li>Rates source: %s</li>", result.RatesSource)
	html.WriteString("</ul>")

	return &Email{
		To:       []string{to},
		Subject:  fmt.Sprintf("Country Atlas refresh: %d countries", result.TotalCountries),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
}
