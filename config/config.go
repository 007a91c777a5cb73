package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	CacheDir    string
	// Upstream data sources (ordered fallback chains)
	CountriesAPIURLs []string
	RatesAPIURLs     []string
	UpstreamTimeout  int // seconds, per candidate request
	// Scheduled refresh (cron expression, empty disables the scheduler)
	RefreshSchedule string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTo       string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Other
	AllowedOrigins   []string
	AppURL           string
	TursoDatabaseURL string
	TursoAuthToken   string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
	// Refresh endpoint throttling
	RefreshRateLimit  int
	RefreshRateWindow int // seconds
}

const (
	defaultCountriesAPIURLs = "https://restcountries.com/v3.1/all?fields=name,capital,region,population,currencies,flags|" +
		"https://restcountries.com/v2/all?fields=name,capital,region,population,currencies,flag"
	defaultRatesAPIURLs = "https://open.er-api.com/v6/latest/USD|https://api.exchangerate-api.com/v4/latest/USD"
)

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		CacheDir:          getEnv("CACHE_DIR", "cache"),
		CountriesAPIURLs:  splitURLList(getEnv("COUNTRIES_API_URLS", defaultCountriesAPIURLs)),
		RatesAPIURLs:      splitURLList(getEnv("RATES_API_URLS", defaultRatesAPIURLs)),
		UpstreamTimeout:   getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10),
		RefreshSchedule:   getEnv("REFRESH_SCHEDULE", ""),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "noreply@countryatlas.app"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Country Atlas"),
		EmailTo:           getEnv("EMAIL_TO", ""),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
		TursoDatabaseURL:  getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:    getEnv("TURSO_AUTH_TOKEN", ""),
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		RefreshRateLimit:  getEnvInt("REFRESH_RATE_LIMIT", 5),
		RefreshRateWindow: getEnvInt("REFRESH_RATE_WINDOW_SECONDS", 60),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// splitURLList splits a pipe-separated endpoint list, trimming whitespace and
// dropping empty entries so a trailing separator never becomes a fetch
// candidate. Pipes are used because the endpoint URLs themselves carry commas
// in their query strings.
func splitURLList(raw string) []string {
	parts := strings.Split(raw, "|")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
