package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// CRM webhook
	WebhookBaseURL string
	HTTPTimeout    time.Duration

	// Sync behavior
	TargetDepartment string
	ExcludedUserIDs  map[string]bool
	Lookback         time.Duration

	// Spreadsheet sink
	SheetKey        string
	WorksheetName   string
	CredentialsFile string

	// Trigger auth
	TriggerToken string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		WebhookBaseURL:   os.Getenv("WEBHOOK_BASE_URL"),
		TargetDepartment: getEnv("TARGET_DEPARTMENT", "Comercial Interno"),
		SheetKey:         os.Getenv("SHEET_KEY"),
		WorksheetName:    getEnv("WORKSHEET_NAME", "Dados"),
		CredentialsFile:  getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		TriggerToken:     os.Getenv("TRIGGER_TOKEN"),
	}

	if config.WebhookBaseURL == "" {
		return nil, fmt.Errorf("WEBHOOK_BASE_URL is required")
	}
	if config.SheetKey == "" {
		return nil, fmt.Errorf("SHEET_KEY is required")
	}

	httpTimeout, err := strconv.Atoi(getEnv("HTTP_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	config.HTTPTimeout = time.Duration(httpTimeout) * time.Second

	lookback, err := strconv.Atoi(getEnv("LOOKBACK_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKBACK_HOURS: %w", err)
	}
	config.Lookback = time.Duration(lookback) * time.Hour

	config.ExcludedUserIDs = make(map[string]bool)
	for _, id := range strings.Split(getEnv("EXCLUDED_USER_IDS", ""), ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			config.ExcludedUserIDs[id] = true
		}
	}

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
