package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWeekdays(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected Weekday
	}{
		{"monday", time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local), Monday},
		{"tuesday", time.Date(2026, 1, 6, 9, 0, 0, 0, time.Local), Tuesday},
		{"wednesday", time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local), Wednesday},
		{"thursday", time.Date(2026, 1, 8, 9, 0, 0, 0, time.Local), Thursday},
		{"friday", time.Date(2026, 1, 9, 9, 0, 0, 0, time.Local), Friday},
		{"saturday collapses to monday", time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), Monday},
		{"sunday collapses to monday", time.Date(2026, 1, 11, 9, 0, 0, 0, time.Local), Monday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, _ := Resolve(tt.date)
			assert.Equal(t, tt.expected, day)
		})
	}
}

func TestResolveTimeOfDay(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	for hour := 0; hour < 24; hour++ {
		_, tod := Resolve(monday.Add(time.Duration(hour) * time.Hour))
		if hour < NoonHour {
			assert.Equal(t, Morning, tod, "hour %d", hour)
		} else {
			assert.Equal(t, Afternoon, tod, "hour %d", hour)
		}
	}
}

func TestWeekendPolicyConsistent(t *testing.T) {
	saturday := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)

	for hour := 0; hour < 24; hour++ {
		satDay, satTod := Resolve(saturday.Add(time.Duration(hour) * time.Hour))
		sunDay, sunTod := Resolve(sunday.Add(time.Duration(hour) * time.Hour))
		assert.Equal(t, satDay, sunDay)
		assert.Equal(t, satTod, sunTod)
	}
}
