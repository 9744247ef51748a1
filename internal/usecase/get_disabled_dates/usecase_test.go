package get_disabled_dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking/memstore"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingRepository struct{}

func (failingRepository) FullyBookedDates(context.Context, time.Time, time.Time, []string, []domain.BookingStatus) ([]time.Time, error) {
	return nil, errors.New("connection refused")
}

func june(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

// Суббота, 8 июня 2024
var saturdayMorning = time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)

func newUseCase(repo BookingRepository, policy domain.OccupancyPolicy) *UseCase {
	uc := NewUseCase(repo, domain.DefaultSlotCatalog(time.UTC), policy, 0, logger.NewNop())
	uc.timeProvider = fixedClock{now: saturdayMorning}
	return uc
}

func bookWholeDay(t *testing.T, repo *memstore.Repository, date time.Time) []*domain.Booking {
	t.Helper()
	out := make([]*domain.Booking, 0)
	for _, slot := range domain.DefaultSlotLabels {
		b, err := repo.Insert(context.Background(), &domain.Booking{
			Date:         date,
			TimeSlot:     slot,
			CustomerName: "A",
			Address:      "X",
			Status:       domain.StatusBooked,
		})
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func reasons(resp *Response) map[string]string {
	out := make(map[string]string)
	for _, d := range resp.DisabledDates {
		out[domain.DateKey(d.Date)] = d.Reason
	}
	return out
}

func TestExecute_PastOffDayAndFullyBooked(t *testing.T) {
	repo := memstore.NewRepository()
	bookWholeDay(t, repo, june(10))

	resp, err := newUseCase(repo, nil).Execute(context.Background(), &Request{From: june(7), To: june(11)})

	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, map[string]string{
		"2024-06-07": "past",
		"2024-06-09": "off_day",
		"2024-06-10": "fully_booked",
	}, reasons(resp))
}

func TestExecute_CancelReenablesDate(t *testing.T) {
	repo := memstore.NewRepository()
	bookings := bookWholeDay(t, repo, june(10))
	uc := newUseCase(repo, nil)

	require.NoError(t, repo.UpdateStatus(context.Background(), bookings[0].ID, domain.StatusBooked, domain.StatusCanceled))

	resp, err := uc.Execute(context.Background(), &Request{From: june(10), To: june(10)})
	require.NoError(t, err)
	assert.Empty(t, resp.DisabledDates)
}

func TestExecute_CompletedCountsOnlyUnderCalendarPolicy(t *testing.T) {
	repo := memstore.NewRepository()
	bookings := bookWholeDay(t, repo, june(10))
	require.NoError(t, repo.UpdateStatus(context.Background(), bookings[0].ID, domain.StatusBooked, domain.StatusCompleted))

	interactive, err := newUseCase(repo, domain.InteractiveOccupancy).
		Execute(context.Background(), &Request{From: june(10), To: june(10)})
	require.NoError(t, err)
	assert.Empty(t, interactive.DisabledDates)

	calendar, err := newUseCase(repo, domain.CalendarOccupancy).
		Execute(context.Background(), &Request{From: june(10), To: june(10)})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2024-06-10": "fully_booked"}, reasons(calendar))
}

func TestExecute_FailsOpen(t *testing.T) {
	resp, err := newUseCase(failingRepository{}, nil).
		Execute(context.Background(), &Request{From: june(8), To: june(10)})

	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, DegradedWarning, resp.Warning)
	assert.Equal(t, map[string]string{"2024-06-09": "off_day"}, reasons(resp))
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newUseCase(memstore.NewRepository(), nil)

	_, err := uc.Execute(context.Background(), &Request{From: june(10), To: june(9)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{To: june(9)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{From: june(1), To: june(1).AddDate(0, 0, domain.DefaultMaxRangeDays)})
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = uc.Execute(context.Background(), &Request{From: june(1), To: june(1).AddDate(0, 0, domain.DefaultMaxRangeDays-1)})
	assert.NoError(t, err)
}
