// Package pricing maps a wall-clock time to an event's active entry price tier.
// Every function here is pure and safe for concurrent use.
package pricing

import (
	"errors"
	"sort"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
)

const FreeEntryTierName = "Free Entry"

var ErrConfiguration = errors.New("event has no price tier for the requested time")

// FreeEntryTier is the synthetic zero-price tier handed out before an event's
// free entry cutoff.
var FreeEntryTier = models.PriceTier{Name: FreeEntryTierName, StartTime: models.Midnight, Price: 0}

// ResolveTier returns the latest tier whose start time is at or before at.
// Tiers sharing a start time resolve to the one given last. When at precedes every
// tier, the free entry rule applies if configured, otherwise the earliest tier is used.
func ResolveTier(event *models.EventConfig, at models.TimeOfDay) (models.PriceTier, error) {
	tiers := sortedTiers(event.Tiers)

	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].StartTime <= at {
			return tiers[i], nil
		}
	}

	if freeEntryApplies(event, at) {
		return FreeEntryTier, nil
	}

	if len(tiers) == 0 {
		return models.PriceTier{}, ErrConfiguration
	}
	return tiers[0], nil
}

// SurchargeBetween is the amount owed on top of original when arriving at at.
// It is never negative: arriving under a cheaper tier is not refunded.
func SurchargeBetween(original models.PriceTier, at models.TimeOfDay, event *models.EventConfig) (int64, error) {
	current, err := ResolveTier(event, at)
	if err != nil {
		return 0, err
	}
	return max(0, current.Price-original.Price), nil
}

// WithinGracePeriod reports whether checkIn falls inside the event's grace window
// after bookingTime. It is advisory and does not influence pricing.
func WithinGracePeriod(bookingTime, checkIn models.TimeOfDay, event *models.EventConfig) bool {
	return checkIn.Sub(bookingTime) <= event.GracePeriodMinutes
}

func freeEntryApplies(event *models.EventConfig, at models.TimeOfDay) bool {
	return event.CoverChargeType == models.CoverChargeFreeBefore &&
		event.FreeEntryBeforeTime != nil &&
		at <= *event.FreeEntryBeforeTime
}

func sortedTiers(tiers []models.PriceTier) []models.PriceTier {
	out := make([]models.PriceTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
