package get_slot_availability

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

type failingRepository struct{}

func (failingRepository) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func june(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func insert(t *testing.T, repo *memstore.Repository, date time.Time, slot string, status domain.BookingStatus) {
	t.Helper()
	b, err := repo.Insert(context.Background(), &domain.Booking{
		Date:         date,
		TimeSlot:     slot,
		CustomerName: "A",
		Address:      "X",
		Status:       domain.StatusBooked,
	})
	require.NoError(t, err)
	if status != domain.StatusBooked {
		require.NoError(t, repo.UpdateStatus(context.Background(), b.ID, domain.StatusBooked, status))
	}
}

func TestExecute_ReportsTakenSlots(t *testing.T) {
	repo := memstore.NewRepository()
	insert(t, repo, june(10), "2-4 PM", domain.StatusBooked)
	insert(t, repo, june(10), "6-8 PM", domain.StatusCanceled)
	insert(t, repo, june(11), "4-6 PM", domain.StatusBooked)

	uc := NewUseCase(repo, domain.DefaultSlotCatalog(time.UTC), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: june(10)})

	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	require.Len(t, resp.Slots, 4)

	availability := make(map[string]bool)
	for _, s := range resp.Slots {
		availability[s.TimeSlot] = s.Available
	}
	assert.Equal(t, map[string]bool{
		"2-4 PM":  false,
		"4-6 PM":  true,
		"6-8 PM":  true,
		"8-10 PM": true,
	}, availability)
	assert.Equal(t, "14:00", resp.Slots[0].StartTime)
	assert.Equal(t, "16:00", resp.Slots[0].EndTime)
}

func TestExecute_FailsOpen(t *testing.T) {
	uc := NewUseCase(failingRepository{}, domain.DefaultSlotCatalog(time.UTC), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: june(10)})

	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, DegradedWarning, resp.Warning)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, s.TimeSlot)
	}
}

func TestExecute_RequiresDate(t *testing.T) {
	uc := NewUseCase(memstore.NewRepository(), domain.DefaultSlotCatalog(time.UTC), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
