package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekID(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"first week of 2024", time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), "2024-01"},
		{"second week of 2024", time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC), "2024-02"},
		{"monday midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01"},
		{"sunday closes the week", time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC), "2024-01"},
		{"new year sunday keeps calendar year", time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), "2023-00"},
		{"new year wednesday", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), "2025-01"},
		{"last days of a leap year", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), "2024-53"},
		{"mid october", time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), "2026-43"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekID(tt.at))
		})
	}
}

func TestWeekID_UsesLocation(t *testing.T) {
	// Sunday 23:30 UTC is already Monday in UTC+2
	at := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)
	zone := time.FixedZone("UTC+2", 2*60*60)

	assert.Equal(t, "2024-01", WeekID(at))
	assert.Equal(t, "2024-02", WeekID(at.In(zone)))
}

func TestStartOfWeek(t *testing.T) {
	wednesday := time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(wednesday))

	sunday := time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	monday := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), NextWeekStart(monday))
}
