package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]BookingStatus]bool{
		{StatusBooked, StatusCompleted}:    true,
		{StatusBooked, StatusCanceled}:     true,
		{StatusBooked, StatusDeleted}:      true,
		{StatusCompleted, StatusDeleted}:   true,
		{StatusCanceled, StatusDeleted}:    true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]BookingStatus{from, to}], CanTransition(from, to))
			})
		}
	}
}

func TestCanTransition_NothingReturnsToBooked(t *testing.T) {
	for _, from := range AllStatuses {
		assert.False(t, CanTransition(from, StatusBooked), "from %s", from)
	}
}

func TestCanTransition_DeletedIsAbsorbing(t *testing.T) {
	assert.Empty(t, AllowedTransitions(StatusDeleted))
	for _, to := range AllStatuses {
		assert.False(t, CanTransition(StatusDeleted, to), "to %s", to)
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus(" Canceled ")
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, status)

	_, err = ParseBookingStatus("cancelled_by_user")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	assert.True(t, StatusDeleted.IsValid())
	assert.False(t, BookingStatus("Booked").IsValid())
}
