package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func NewPostgresDB(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.EventConfig{}, &models.GroupBooking{}, &models.GroupMember{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Partial index backing the active-bookings-per-event listing.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_group_bookings_active
		ON group_bookings (event_id, created_at)
		WHERE status = 'active'
	`).Error; err != nil {
		return fmt.Errorf("create active booking index: %w", err)
	}

	return nil
}
