package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_DRIVER", "DB_HOST", "RABBITMQ_URL", "REDIS_ADDR", "QR_TOKEN_TTL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Empty(t, cfg.RabbitURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Duration(0), cfg.QRTokenTTL)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("QR_TOKEN_TTL", "90m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VENUE_TIMEZONE", "UTC")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.QRTokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("QR_TOKEN_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Duration(0), cfg.QRTokenTTL)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "entry", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=entry sslmode=disable", cfg.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{StorageDriver: StorageMemory, PaymentSecret: "s", VenueTimezone: "UTC"}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.StorageDriver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.PaymentSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.VenueTimezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
}
