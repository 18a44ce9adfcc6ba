package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int

	RabbitURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// QRTokenTTL of zero keeps QR tokens for the lifetime of the booking.
	QRTokenTTL    time.Duration

	PaymentBaseURL string
	PaymentSecret  string

	VenueTimezone string
	LogLevel      string
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "entry_db"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 20),

		RabbitURL: getEnv("RABBITMQ_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		QRTokenTTL:    getEnvDuration("QR_TOKEN_TTL", 0),

		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", "http://localhost:8090/checkout"),
		PaymentSecret:  getEnv("PAYMENT_SECRET", "dev-secret"),

		VenueTimezone: getEnv("VENUE_TIMEZONE", "Local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.PaymentSecret == "" {
		return fmt.Errorf("PAYMENT_SECRET must be set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.VenueTimezone)
	if err != nil {
		return nil, fmt.Errorf("load VENUE_TIMEZONE %q: %w", c.VenueTimezone, err)
	}
	return loc, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
