package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Port               string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	EnableDBSSL        bool
	Environment        string // "development", "staging", "production"
	AppVersion         string
	DefaultLocale      string
	CoverageWebhookURL string // admin webhook notified when a selected risk has no strategies
	// Add other settings here
}

var Cfg AppConfig

// LoadConfig loads the application configuration from environment variables.
func LoadConfig() {
	// Load .env for local development, ignore the error if the file is absent (production)
	if err := godotenv.Load(); err != nil {
		log.Println("Notice: .env file not found or could not be loaded:", err)
	}

	Cfg.Port = getEnv("PORT", "8080")

	Cfg.DBHost = getEnv("DB_HOST", "localhost")
	Cfg.DBPort = getEnv("DB_PORT", "5432")
	Cfg.DBUser = getEnv("DB_USER", "atlasbcp_user")
	Cfg.DBPassword = getEnv("DB_PASSWORD", "atlasbcp_pass")
	Cfg.DBName = getEnv("DB_NAME", "atlasbcp_db")
	Cfg.EnableDBSSL = getEnvAsBool("DB_SSL_ENABLE", false)

	Cfg.Environment = getEnv("ENVIRONMENT", "development")
	Cfg.AppVersion = getEnv("APP_VERSION", "")
	Cfg.DefaultLocale = getEnv("DEFAULT_LOCALE", "en")
	Cfg.CoverageWebhookURL = getEnv("COVERAGE_WEBHOOK_URL", "")

	log.Printf("Configuration loaded for environment: %s", Cfg.Environment)
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBool returns the boolean value of an environment variable or a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Notice: boolean environment variable '%s' has invalid value '%s', using default: %t. Error: %v", key, valStr, defaultValue, err)
		return defaultValue
	}
	return valBool
}

func init() {
	LoadConfig() // Load config automatically on package initialization
}
