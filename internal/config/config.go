package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	DataDir string

	// Vendor backend API
	VendorAPIBaseURL string
	VendorAPIToken   string

	// Reminder channel: "mock" or "whatsapp"
	ReminderChannel string
	WhatsAppDataDir string

	// Budget alert thresholds, percent of a category's allocation
	BudgetWarningPercent  float64
	BudgetCriticalPercent float64
}

// LoadConfig loads configuration from environment variables or defaults
func LoadConfig() *Config {
	return &Config{
		DataDir:               getEnv("TTK_DATA_DIR", "data"),
		VendorAPIBaseURL:      getEnv("TTK_VENDOR_API_URL", "http://localhost:8080"),
		VendorAPIToken:        getEnv("TTK_VENDOR_API_TOKEN", ""),
		ReminderChannel:       getEnv("TTK_REMINDER_CHANNEL", "mock"),
		WhatsAppDataDir:       getEnv("WHATSAPP_DATA_DIR", "data"),
		BudgetWarningPercent:  getEnvFloat("TTK_BUDGET_WARNING_PERCENT", 80),
		BudgetCriticalPercent: getEnvFloat("TTK_BUDGET_CRITICAL_PERCENT", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
