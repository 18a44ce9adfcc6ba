package handler

import (
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
)

// Clock reports the venue's current wall-clock time. Requests that omit a time use it.
type Clock func() models.TimeOfDay

func VenueClock(loc *time.Location) Clock {
	return func() models.TimeOfDay {
		return models.TimeOfDayFrom(time.Now().In(loc))
	}
}
