package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Feeds     FeedsConfig
	Sheets    SheetsConfig
	Polling   PollingConfig
	Locations LocationsConfig
	Submit    SubmitConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// FeedsConfig contains the published-spreadsheet URLs the engine polls.
type FeedsConfig struct {
	CatalogURL   string
	SummaryURL   string
	ResourcesURL string
}

// SheetsConfig enables the Google Sheets API feed source as an alternative
// to the published CSV endpoints. Both fields must be set to activate it.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	CatalogRange    string
	SummaryRange    string
	ResourcesRange  string
}

// PollingConfig holds the refresher's timing knobs.
type PollingConfig struct {
	Interval        time.Duration
	ReadyRetryDelay time.Duration
}

// LocationsConfig describes the closed set of storage locations and the
// neutral location whose self-transfers represent restocking.
type LocationsConfig struct {
	Names   []string
	Neutral string
}

// SubmitConfig holds the transfer submission endpoint.
type SubmitConfig struct {
	URL     string
	Timeout time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	interval, err := parseDurationWithDefault("POLL_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDurationWithDefault("READY_RETRY_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	submitTimeout, err := parseDurationWithDefault("SUBMIT_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Feeds: FeedsConfig{
			CatalogURL:   os.Getenv("CATALOG_FEED_URL"),
			SummaryURL:   os.Getenv("SUMMARY_FEED_URL"),
			ResourcesURL: os.Getenv("RESOURCES_FEED_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			CatalogRange:    getenvWithDefault("SHEETS_CATALOG_RANGE", "Checklist!A:A"),
			SummaryRange:    getenvWithDefault("SHEETS_SUMMARY_RANGE", "Summary!A:D"),
			ResourcesRange:  getenvWithDefault("SHEETS_RESOURCES_RANGE", "Resources!A:Z"),
		},
		Polling: PollingConfig{
			Interval:        interval,
			ReadyRetryDelay: retryDelay,
		},
		Locations: LocationsConfig{
			Names:   splitList(getenvWithDefault("LOCATIONS", "School,My House")),
			Neutral: getenvWithDefault("NEUTRAL_LOCATION", "School"),
		},
		Submit: SubmitConfig{
			URL:     os.Getenv("SUBMIT_URL"),
			Timeout: submitTimeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if !c.Sheets.Enabled() {
		switch {
		case c.Feeds.CatalogURL == "":
			return errors.New("CATALOG_FEED_URL must be provided")
		case c.Feeds.SummaryURL == "":
			return errors.New("SUMMARY_FEED_URL must be provided")
		}
	}

	if c.Submit.URL == "" {
		return errors.New("SUBMIT_URL must be provided")
	}

	if c.Polling.Interval <= 0 {
		return errors.New("POLL_INTERVAL must be positive")
	}

	if c.Polling.ReadyRetryDelay <= 0 {
		return errors.New("READY_RETRY_DELAY must be positive")
	}

	if len(c.Locations.Names) == 0 {
		return errors.New("LOCATIONS must name at least one location")
	}

	if c.Locations.Neutral == "" {
		return errors.New("NEUTRAL_LOCATION must be provided")
	}

	return nil
}

// Enabled reports whether the Sheets API source should be used instead of
// the published CSV feeds.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
