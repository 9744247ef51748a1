package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func bookingAt(date time.Time, slot string, status BookingStatus) *Booking {
	return &Booking{Date: date, TimeSlot: slot, Status: status}
}

func fullDay(date time.Time, status BookingStatus) []*Booking {
	out := make([]*Booking, 0, len(DefaultSlotLabels))
	for _, label := range DefaultSlotLabels {
		out = append(out, bookingAt(date, label, status))
	}
	return out
}

func TestSlotAvailability(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	bookings := []*Booking{
		bookingAt(day(10), "2-4 PM", StatusBooked),
		bookingAt(day(10), "4-6 PM", StatusCompleted),
		bookingAt(day(10), "6-8 PM", StatusCanceled),
		bookingAt(day(10), "8-10 PM", StatusDeleted),
		bookingAt(day(11), "4-6 PM", StatusBooked),
	}

	states := SlotAvailability(catalog, day(10), bookings)

	require.Len(t, states, 4)
	got := map[string]bool{}
	for _, s := range states {
		got[s.Slot.Label] = s.Available
	}
	assert.Equal(t, map[string]bool{
		"2-4 PM":  false,
		"4-6 PM":  true,
		"6-8 PM":  true,
		"8-10 PM": true,
	}, got)
	assert.Equal(t, "2-4 PM", states[0].Slot.Label)
}

func TestFullyBookedDates_Policies(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)

	bookings := fullDay(day(10), StatusBooked)
	mixed := fullDay(day(11), StatusBooked)
	mixed[0].Status = StatusCompleted
	bookings = append(bookings, mixed...)
	// three slots only
	bookings = append(bookings, fullDay(day(12), StatusBooked)[:3]...)

	interactive := FullyBookedDates(catalog, bookings, InteractiveOccupancy)
	calendar := FullyBookedDates(catalog, bookings, CalendarOccupancy)

	assert.True(t, interactive.Has(day(10)))
	assert.False(t, interactive.Has(day(11)))
	assert.False(t, interactive.Has(day(12)))

	assert.True(t, calendar.Has(day(10)))
	assert.True(t, calendar.Has(day(11)))
	assert.False(t, calendar.Has(day(12)))
}

func TestFullyBookedDates_IgnoresUnknownSlots(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	bookings := fullDay(day(10), StatusBooked)[:3]
	bookings = append(bookings, bookingAt(day(10), "10-11 AM", StatusBooked))

	assert.False(t, FullyBookedDates(catalog, bookings, InteractiveOccupancy).Has(day(10)))
}

func TestDisabledDates_Scenario(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	full := FullyBookedDates(catalog, fullDay(day(10), StatusBooked), InteractiveOccupancy)
	disabled := DisabledDates(catalog, DatesBetween(day(9), day(11)), full, now, 0)

	assert.Equal(t, []DisabledDate{
		{Date: day(9), Reason: ReasonOffDay},
		{Date: day(10), Reason: ReasonFullyBooked},
	}, disabled)
}

func TestDisabledDates_CancelReenablesDate(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	bookings := fullDay(day(10), StatusBooked)

	before := DisabledDates(catalog, []time.Time{day(10)}, FullyBookedDates(catalog, bookings, InteractiveOccupancy), now, 0)
	require.Len(t, before, 1)

	bookings[2].Status = StatusCanceled
	after := DisabledDates(catalog, []time.Time{day(10)}, FullyBookedDates(catalog, bookings, InteractiveOccupancy), now, 0)
	assert.Empty(t, after)
}

func TestDisabledDates_OffDayAlwaysDisabled(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, sunday := range []time.Time{day(2), day(9), day(16), day(23), day(30)} {
		disabled := DisabledDates(catalog, []time.Time{sunday}, DateSet{}, now, 0)
		require.Len(t, disabled, 1, sunday)
		assert.Equal(t, ReasonOffDay, disabled[0].Reason)
	}
}

func TestDisabledDates_Past(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC)

	disabled := DisabledDates(catalog, DatesBetween(day(10), day(13)), DateSet{}, now, 0)

	assert.Equal(t, []DisabledDate{
		{Date: day(10), Reason: ReasonPast},
		{Date: day(11), Reason: ReasonPast},
	}, disabled)
}

func TestDisabledDates_BeyondHorizon(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)

	disabled := DisabledDates(catalog, DatesBetween(day(9), day(16)), DateSet{}, now, 3)

	assert.Equal(t, []DisabledDate{
		{Date: day(9), Reason: ReasonOffDay},
		{Date: day(12), Reason: ReasonBeyondHorizon},
		{Date: day(13), Reason: ReasonBeyondHorizon},
		{Date: day(14), Reason: ReasonBeyondHorizon},
		{Date: day(15), Reason: ReasonBeyondHorizon},
		{Date: day(16), Reason: ReasonOffDay},
	}, disabled)
}

func TestSlotCatalog_IsBeyondHorizon(t *testing.T) {
	catalog := DefaultSlotCatalog(time.UTC)
	now := time.Date(2024, 6, 8, 23, 59, 0, 0, time.UTC)

	assert.False(t, catalog.IsBeyondHorizon(day(11), now, 3))
	assert.True(t, catalog.IsBeyondHorizon(day(12), now, 3))
	assert.False(t, catalog.IsBeyondHorizon(day(30), now, 0))
}
