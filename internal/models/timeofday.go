package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// TimeOfDay is a wall-clock time on the single implicit event day, stored as
// minutes after midnight.
type TimeOfDay int

const (
	Midnight     TimeOfDay = 0
	minutesInDay           = 24 * 60
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayFrom truncates t to the minute in its own location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return NewTimeOfDay(h, m), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesInDay
}

// Sub returns t-u in minutes.
func (t TimeOfDay) Sub(u TimeOfDay) int {
	return int(t) - int(u)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, string(data))
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
