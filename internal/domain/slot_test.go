package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		label     string
		wantStart string
		wantEnd   string
	}{
		{"2-4 PM", "14:00", "16:00"},
		{"8-10 PM", "20:00", "22:00"},
		{"10-12 PM", "10:00", "12:00"},
		{"11-1 PM", "11:00", "13:00"},
		{"2 PM-4 PM", "14:00", "16:00"},
		{"2pm - 4pm", "14:00", "16:00"},
		{"2:30-4 PM", "14:30", "16:00"},
		{"10 PM-12 AM", "22:00", "24:00"},
		{"10-12 AM", "22:00", "24:00"},
		{"11:30-12 AM", "23:30", "24:00"},
		{"9 AM-1", "09:00", "13:00"},
		{"14:00-16:00", "14:00", "16:00"},
		{"09:00-11:30", "09:00", "11:30"},
		{"22:00-24:00", "22:00", "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			slot, err := ParseTimeSlot(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, slot.StartTime())
			assert.Equal(t, tt.wantEnd, slot.EndTime())
		})
	}
}

func TestParseTimeSlot_Invalid(t *testing.T) {
	for _, label := range []string{
		"",
		"2 PM",
		"2-4-6 PM",
		"x-4 PM",
		"2-13 PM",
		"16:00-14:00",
		"2-4",
		"4 PM-2 PM",
		"2:75-4 PM",
	} {
		t.Run(label, func(t *testing.T) {
			_, err := ParseTimeSlot(label)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestTimeSlot_EndOn(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	slot, err := ParseTimeSlot("2-4 PM")
	require.NoError(t, err)

	end := slot.EndOn(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2024, 6, 10, 16, 0, 0, 0, loc), end)
	assert.True(t, end.Equal(time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)))
}

func TestTimeSlot_EndOfDay(t *testing.T) {
	slot, err := ParseTimeSlot("10 PM-12 AM")
	require.NoError(t, err)

	end := slot.EndOn(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), time.UTC)

	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), end)
}
