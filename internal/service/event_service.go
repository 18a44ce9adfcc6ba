package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/pricing"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/repository"
)

type EventService interface {
	SetEventConfig(ctx context.Context, event *models.EventConfig) (*models.EventConfig, error)
	GetEventConfig(ctx context.Context, id string) (*models.EventConfig, error)
	ListEventConfigs(ctx context.Context) ([]models.EventConfig, error)
	PreviewTier(ctx context.Context, id string, at models.TimeOfDay) (models.PriceTier, error)
}

type eventService struct {
	repo   repository.EventRepository
	logger *slog.Logger
}

func NewEventService(repo repository.EventRepository, logger *slog.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

// SetEventConfig creates or replaces an event configuration. Bookings already made
// against the event keep the tier they snapshotted at creation.
func (s *eventService) SetEventConfig(ctx context.Context, event *models.EventConfig) (*models.EventConfig, error) {
	if err := validateEventConfig(event); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, event); err != nil {
		return nil, fmt.Errorf("upsert event: %w", err)
	}

	s.logger.Info("event config saved",
		slog.String("event_id", event.ID),
		slog.Int("tiers", len(event.Tiers)),
		slog.Bool("group_booking_enabled", event.GroupBookingEnabled),
	)

	return s.GetEventConfig(ctx, event.ID)
}

func (s *eventService) GetEventConfig(ctx context.Context, id string) (*models.EventConfig, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEventConfigs(ctx context.Context) ([]models.EventConfig, error) {
	return s.repo.FindAll(ctx)
}

func (s *eventService) PreviewTier(ctx context.Context, id string, at models.TimeOfDay) (models.PriceTier, error) {
	event, err := s.GetEventConfig(ctx, id)
	if err != nil {
		return models.PriceTier{}, err
	}
	return pricing.ResolveTier(event, at)
}

func validateEventConfig(e *models.EventConfig) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: id is required", ErrValidation)
	case e.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case !e.CoverChargeType.Valid():
		return fmt.Errorf("%w: unknown cover_charge_type %q", ErrValidation, e.CoverChargeType)
	case e.CoverChargeType == models.CoverChargeFreeBefore && e.FreeEntryBeforeTime == nil:
		return fmt.Errorf("%w: free_before requires free_entry_before_time", ErrValidation)
	case e.FreeEntryBeforeTime != nil && !e.FreeEntryBeforeTime.Valid():
		return fmt.Errorf("%w: free_entry_before_time out of range", ErrValidation)
	case e.RedeemableAmount < 0:
		return fmt.Errorf("%w: redeemable_amount must not be negative", ErrValidation)
	case e.GracePeriodMinutes < 0:
		return fmt.Errorf("%w: grace_period_minutes must not be negative", ErrValidation)
	case e.MaxGroupSize < 1:
		return fmt.Errorf("%w: max_group_size must be at least 1", ErrValidation)
	}

	for i, t := range e.Tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrValidation, i)
		}
		if !t.StartTime.Valid() {
			return fmt.Errorf("%w: tier %q start_time out of range", ErrValidation, t.Name)
		}
		if t.Price < 0 {
			return fmt.Errorf("%w: tier %q price must not be negative", ErrValidation, t.Name)
		}
	}
	return nil
}
