package service

import (
	"errors"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/pricing"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("group booking not found")
	ErrMemberNotFound  = errors.New("group member not found")
)

var (
	ErrConfiguration     = pricing.ErrConfiguration
	ErrFeatureDisabled   = errors.New("group booking is disabled for this event")
	ErrGroupSizeExceeded = errors.New("group size exceeds the event maximum")
	ErrNoSurcharge       = errors.New("member has no outstanding surcharge")
	ErrBookingClosed     = errors.New("group booking is closed")
	ErrValidation        = errors.New("validation error")
)
