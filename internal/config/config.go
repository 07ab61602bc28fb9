package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server       ServerConfig
	Log          LogConfig
	InventoryAPI InventoryAPIConfig
	Screens      ScreensConfig
	Reporting    ReportingConfig
	Sheets       SheetsConfig
	MongoDB      MongoDBConfig
	Alerts       AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// InventoryAPIConfig points at the action-dispatched inventory backend.
type InventoryAPIConfig struct {
	URL       string
	Token     string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// ScreensConfig tunes the list screens.
type ScreensConfig struct {
	PageSize       int
	Debounce       time.Duration
	FetchTimeout   time.Duration
	AuditTimeout   time.Duration
	NotificationsN int
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
// Export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ExportRange     string
}

// MongoDBConfig holds settings for the report snapshot archive. Snapshots are
// disabled when URI is empty.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AlertsConfig contains credentials for the WhatsApp Cloud API used to push
// low-stock digests. Alerts are disabled when AccessToken is empty.
type AlertsConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	Recipient     string
}

// Enabled reports whether Sheets export is configured.
func (c SheetsConfig) Enabled() bool { return c.SpreadsheetID != "" }

// Enabled reports whether the snapshot archive is configured.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// Enabled reports whether WhatsApp alerts are configured.
func (c AlertsConfig) Enabled() bool { return c.AccessToken != "" }

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
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		InventoryAPI: InventoryAPIConfig{
			URL:       os.Getenv("INVENTORY_API_URL"),
			Token:     os.Getenv("INVENTORY_API_TOKEN"),
			Timeout:   getenvDuration("INVENTORY_API_TIMEOUT", 15*time.Second),
			RateLimit: getenvFloat("INVENTORY_API_RATE_LIMIT", 10),
			RateBurst: getenvInt("INVENTORY_API_RATE_BURST", 5),
		},
		Screens: ScreensConfig{
			PageSize:       getenvInt("SCREEN_PAGE_SIZE", 10),
			Debounce:       getenvDuration("SCREEN_DEBOUNCE", 500*time.Millisecond),
			FetchTimeout:   getenvDuration("SCREEN_FETCH_TIMEOUT", 30*time.Second),
			AuditTimeout:   getenvDuration("AUDIT_TIMEOUT", 10*time.Second),
			NotificationsN: getenvInt("NOTIFICATIONS_KEEP", 50),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			ExportRange:     getenvWithDefault("GOOGLE_SHEET_EXPORT_RANGE", "Reports!A1"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "stockdesk"),
		},
		Alerts: AlertsConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			Recipient:     os.Getenv("WHATSAPP_ALERT_RECIPIENT"),
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

	if c.InventoryAPI.URL == "" {
		return errors.New("INVENTORY_API_URL must be provided")
	}

	switch {
	case c.Screens.PageSize <= 0:
		return errors.New("SCREEN_PAGE_SIZE must be positive")
	case c.Screens.Debounce < 0:
		return errors.New("SCREEN_DEBOUNCE must not be negative")
	case c.Screens.NotificationsN <= 0:
		return errors.New("NOTIFICATIONS_KEEP must be positive")
	}

	if c.Sheets.Enabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when export is enabled")
	}

	if c.Alerts.Enabled() {
		switch {
		case c.Alerts.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.Alerts.Recipient == "":
			return errors.New("WHATSAPP_ALERT_RECIPIENT must be provided")
		}
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}
