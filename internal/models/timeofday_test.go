package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", Midnight},
		{"09:05", NewTimeOfDay(9, 5)},
		{"22:45", NewTimeOfDay(22, 45)},
		{"23:59", NewTimeOfDay(23, 59)},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.in, got.String())
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:05", "24:00", "12:60", "12-30", "ab:cd", "+1:00", "12:30:00"} {
		_, err := ParseTimeOfDay(in)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, in)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	type wrapper struct {
		At  TimeOfDay  `json:"at"`
		Opt *TimeOfDay `json:"opt,omitempty"`
	}

	b, err := json.Marshal(wrapper{At: NewTimeOfDay(21, 30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"21:30"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"at":"07:15","opt":"23:00"}`), &w))
	assert.Equal(t, NewTimeOfDay(7, 15), w.At)
	require.NotNil(t, w.Opt)
	assert.Equal(t, NewTimeOfDay(23, 0), *w.Opt)

	assert.Error(t, json.Unmarshal([]byte(`{"at":930}`), &w))
	assert.Error(t, json.Unmarshal([]byte(`{"at":"25:00"}`), &w))
}

func TestTimeOfDay_SubAndValid(t *testing.T) {
	assert.Equal(t, 75, NewTimeOfDay(23, 0).Sub(NewTimeOfDay(21, 45)))
	assert.Equal(t, -15, NewTimeOfDay(21, 45).Sub(NewTimeOfDay(22, 0)))
	assert.True(t, NewTimeOfDay(23, 59).Valid())
	assert.False(t, TimeOfDay(24*60).Valid())
	assert.False(t, TimeOfDay(-1).Valid())
}

func TestTimeOfDayFrom(t *testing.T) {
	loc := time.FixedZone("venue", 7*3600)
	ts := time.Date(2026, 10, 16, 15, 40, 59, 0, time.UTC).In(loc)
	assert.Equal(t, NewTimeOfDay(22, 40), TimeOfDayFrom(ts))
}
