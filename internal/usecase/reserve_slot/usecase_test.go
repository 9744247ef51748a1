package reserve_slot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/slotlock"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking/memstore"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/ptr"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.BookingEvent
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, event eventbus.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *recordingMetrics) ObserveReservation(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Find(ctx context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, date, timeSlot, status)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(*domain.Booking)
	return created, args.Error(1)
}

// stubLocker не вызывает fn и возвращает заданную ошибку
type stubLocker struct {
	err error
}

func (l stubLocker) WithSlotLock(context.Context, time.Time, string, func(ctx context.Context) error) error {
	return l.err
}

// Суббота, 8 июня 2024; 9 июня - воскресенье
var saturdayMorning = time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)

func june(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc        *UseCase
	repo      BookingRepository
	publisher *recordingPublisher
	metrics   *recordingMetrics
}

func newFixture(repo BookingRepository, locker SlotLocker) *fixture {
	if repo == nil {
		repo = memstore.NewRepository()
	}
	if locker == nil {
		locker = slotlock.NoopLocker{}
	}
	f := &fixture{
		repo:      repo,
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
	}
	f.uc = NewUseCase(
		repo,
		domain.DefaultSlotCatalog(time.UTC),
		locker,
		txmanager.NoopManager{},
		f.publisher,
		f.metrics,
		logger.NewNop(),
	)
	f.uc.timeProvider = fixedClock{now: saturdayMorning}
	return f
}

func validRequest() *Request {
	return &Request{
		Date:         june(10),
		TimeSlot:     "2-4 PM",
		CustomerName: "A",
		Address:      "X",
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	f := newFixture(nil, nil)

	req := validRequest()
	req.CustomerName = "  Anna  "
	req.Note = ptr.Ptr("   ")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Anna", resp.CustomerName)
	assert.Nil(t, resp.Note)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, june(10), resp.Date)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, eventbus.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, []string{resultCreated}, f.metrics.results)
}

func TestExecute_SecondReservationConflicts(t *testing.T) {
	f := newFixture(nil, nil)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{resultCreated, resultConflict}, f.metrics.results)

	// Другой слот того же дня свободен
	other := validRequest()
	other.TimeSlot = "4-6 PM"
	_, err = f.uc.Execute(ctx, other)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentReservationsExactlyOneWins(t *testing.T) {
	f := newFixture(nil, nil)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(r *Request)
		wantField string
	}{
		{"empty name", func(r *Request) { r.CustomerName = "   " }, FieldCustomerName},
		{"name too long", func(r *Request) { r.CustomerName = strings.Repeat("a", 101) }, FieldCustomerName},
		{"empty address", func(r *Request) { r.Address = "" }, FieldAddress},
		{"address too long", func(r *Request) { r.Address = strings.Repeat("a", 201) }, FieldAddress},
		{"note too long", func(r *Request) { r.Note = ptr.Ptr(strings.Repeat("a", 501)) }, FieldNote},
		{"zero date", func(r *Request) { r.Date = time.Time{} }, FieldDate},
		{"past date", func(r *Request) { r.Date = june(7) }, FieldDate},
		{"off day", func(r *Request) { r.Date = june(9) }, FieldDate},
		{"empty slot", func(r *Request) { r.TimeSlot = "" }, FieldTimeSlot},
		{"unknown slot", func(r *Request) { r.TimeSlot = "10-12 AM" }, FieldTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil, nil)
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidInput)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Empty(t, f.publisher.events)
			assert.Equal(t, []string{resultInvalid}, f.metrics.results)
		})
	}
}

func TestExecute_BoundaryLengthsAccepted(t *testing.T) {
	f := newFixture(nil, nil)
	req := validRequest()
	req.CustomerName = strings.Repeat("я", domain.MaxCustomerNameLength)
	req.Address = strings.Repeat("a", domain.MaxAddressLength)
	req.Note = ptr.Ptr(strings.Repeat("n", domain.MaxNoteLength))

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_TodayIsBookable(t *testing.T) {
	f := newFixture(nil, nil)
	req := validRequest()
	req.Date = june(8)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_MaxAdvanceDays(t *testing.T) {
	f := newFixture(nil, nil)
	f.uc.WithMaxAdvanceDays(3)

	req := validRequest()
	req.Date = june(12)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req.Date = june(11)
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Find", mock.Anything, june(10), "2-4 PM", domain.StatusBooked).
		Return(nil, errors.New("connection refused"))

	f := newFixture(repo, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, []string{resultStoreUnavailable}, f.metrics.results)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestExecute_UniqueViolationIsConflict(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Find", mock.Anything, june(10), "2-4 PM", domain.StatusBooked).
		Return(nil, booking.ErrBookingNotFound)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(nil, booking.ErrSlotTaken)

	f := newFixture(repo, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	repo.AssertExpectations(t)
}

func TestExecute_InsertFailure(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, booking.ErrBookingNotFound)
	repo.On("Insert", mock.Anything, mock.Anything).
		Return(nil, errors.New("disk full"))

	f := newFixture(repo, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_LockHeldElsewhereIsConflict(t *testing.T) {
	f := newFixture(nil, stubLocker{err: slotlock.ErrLockNotAcquired})

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_LockUnavailableProceeds(t *testing.T) {
	f := newFixture(nil, stubLocker{err: slotlock.ErrLockUnavailable})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "2-4 PM", resp.TimeSlot)

	// Уникальность обеспечивается хранилищем и без блокировки
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
