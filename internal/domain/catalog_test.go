package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotCatalog(t *testing.T) {
	catalog, err := NewSlotCatalog(DefaultSlotLabels, time.Sunday, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"2-4 PM", "4-6 PM", "6-8 PM", "8-10 PM"}, catalog.Labels())
	assert.Equal(t, 4, catalog.Len())
	assert.True(t, catalog.Contains("6-8 PM"))
	assert.False(t, catalog.Contains("6-8 pm"))

	slot, ok := catalog.Lookup("8-10 PM")
	require.True(t, ok)
	assert.Equal(t, 22*60, slot.EndMinutes)
}

func TestNewSlotCatalog_Errors(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		offDay time.Weekday
	}{
		{"empty", nil, time.Sunday},
		{"duplicate", []string{"2-4 PM", "2-4 PM"}, time.Sunday},
		{"unparseable", []string{"afternoon"}, time.Sunday},
		{"bad off-day", DefaultSlotLabels, time.Weekday(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlotCatalog(tt.labels, tt.offDay, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestSlotCatalog_IsOffDay(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)

	assert.True(t, catalog.IsOffDay(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, catalog.IsOffDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
}

func TestSlotCatalog_TodayUsesCatalogZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	catalog := DefaultSlotCatalog(loc)

	// 02:00 UTC on the 11th is still the 10th in UTC-5
	now := time.Date(2024, 6, 11, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), catalog.Today(now))
	assert.False(t, catalog.IsPast(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, catalog.IsPast(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), now))
}

func TestSlotCatalog_SlotEnd(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	end, err := catalog.SlotEnd(date, "4-6 PM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC), end)

	// label removed from the catalog is still parseable
	end, err = catalog.SlotEnd(date, "10-11 AM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC), end)

	_, err = catalog.SlotEnd(date, "whenever")
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestDatesBetween(t *testing.T) {
	dates := DatesBetween(
		time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	)

	require.Len(t, dates, 3)
	assert.Equal(t, "2024-06-09", DateKey(dates[0]))
	assert.Equal(t, "2024-06-11", DateKey(dates[2]))

	assert.Empty(t, DatesBetween(dates[2], dates[0]))
}
