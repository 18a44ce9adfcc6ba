package repository

import (
	"context"
	"errors"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Upsert(ctx context.Context, event *models.EventConfig) error
	FindByID(ctx context.Context, id string) (*models.EventConfig, error)
	FindAll(ctx context.Context) ([]models.EventConfig, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Upsert replaces the stored configuration for event.ID, keeping its created_at.
func (r *eventRepository) Upsert(ctx context.Context, event *models.EventConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "date", "tiers", "cover_charge_type", "redeemable_amount",
			"free_entry_before_time", "grace_period_minutes", "group_booking_enabled",
			"max_group_size", "updated_at",
		}),
	}).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.EventConfig, error) {
	var event models.EventConfig
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.EventConfig, error) {
	var events []models.EventConfig
	if err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
