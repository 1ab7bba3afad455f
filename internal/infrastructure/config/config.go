// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// App
	LogLevel string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Telegram
	TelegramBotToken    string
	TelegramAPIURL      string
	TelegramPollTimeout time.Duration

	// Store
	StoreDriver string
	PostgresURI string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Fares
	FaresAPIURL   string
	Currency      string
	LookupTimeout time.Duration

	// Tracking
	CheckInterval  time.Duration
	MaxFlights     int
	DiscoveryDelay time.Duration
	AirportsFile   string
	Origins        []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL:      getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramPollTimeout: getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		PostgresURI: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=fares port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "fares"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		FaresAPIURL:   getEnv("FARES_API_URL", "https://services-api.ryanair.com/farfnd/v4/oneWayFares"),
		Currency:      strings.ToUpper(getEnv("CURRENCY", "EUR")),
		LookupTimeout: getEnvAsDuration("LOOKUP_TIMEOUT", 15*time.Second),

		CheckInterval:  getEnvAsDuration("CHECK_INTERVAL", 2*time.Hour),
		MaxFlights:     getEnvAsInt("MAX_FLIGHTS", 2),
		DiscoveryDelay: getEnvAsDuration("DISCOVERY_DELAY", time.Second),
		AirportsFile:   getEnv("AIRPORTS_FILE", ""),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	origins, err := LoadAirports(config.AirportsFile)
	if err != nil {
		return nil, err
	}
	config.Origins = origins

	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.MaxFlights < 1 {
		return fmt.Errorf("MAX_FLIGHTS must be at least 1, got %d", c.MaxFlights)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("CHECK_INTERVAL must be positive, got %s", c.CheckInterval)
	}
	if c.DiscoveryDelay < 0 {
		return fmt.Errorf("DISCOVERY_DELAY must not be negative, got %s", c.DiscoveryDelay)
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s", "2h") or plain seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
