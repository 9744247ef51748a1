package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
)

// Repository in-memory хранилище бронирований с теми же гарантиями, что и PostgreSQL:
// не более одного активного бронирования на пару (дата, слот).
// Используется для локального запуска (database.driver = "memory") и тестов.
type Repository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*domain.Booking
	active   map[string]uuid.UUID // "дата|слот" -> id активного бронирования
	now      func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		bookings: make(map[uuid.UUID]*domain.Booking),
		active:   make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

func activeKey(date time.Time, timeSlot string) string {
	return domain.DateKey(domain.NormalizeDate(date)) + "|" + timeSlot
}

func clone(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Note != nil {
		note := *b.Note
		c.Note = &note
	}
	return &c
}

func (r *Repository) Insert(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(b)
	stored.Date = domain.NormalizeDate(stored.Date)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}

	if stored.Status == domain.StatusBooked {
		key := activeKey(stored.Date, stored.TimeSlot)
		if _, taken := r.active[key]; taken {
			return nil, booking.ErrSlotTaken
		}
		r.active[key] = stored.ID
	}

	now := r.now()
	stored.CreatedAt, stored.UpdatedAt = now, now
	r.bookings[stored.ID] = stored

	return clone(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return clone(b), nil
}

func (r *Repository) Find(_ context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	date = domain.NormalizeDate(date)
	var found *domain.Booking
	for _, b := range r.bookings {
		if b.Date.Equal(date) && b.TimeSlot == timeSlot && b.Status == status {
			if found == nil || b.CreatedAt.After(found.CreatedAt) {
				found = b
			}
		}
	}
	if found == nil {
		return nil, booking.ErrBookingNotFound
	}
	return clone(found), nil
}

func (r *Repository) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return booking.ErrStatusChanged
	}

	if from == domain.StatusBooked && to != domain.StatusBooked {
		delete(r.active, activeKey(b.Date, b.TimeSlot))
	}
	b.Status = to
	b.UpdatedAt = r.now()
	return nil
}

func (r *Repository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policy := domain.OccupancyPolicy(filter.Statuses)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if len(filter.Statuses) > 0 && !policy.Occupies(b.Status) {
			continue
		}
		if filter.StartDate != nil && b.Date.Before(domain.NormalizeDate(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && b.Date.After(domain.NormalizeDate(*filter.EndDate)) {
			continue
		}
		if search != "" && !matches(b, search) {
			continue
		}
		out = append(out, clone(b))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].SlotStartMinutes != out[j].SlotStartMinutes {
			return out[i].SlotStartMinutes < out[j].SlotStartMinutes
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})

	return out, nil
}

func (r *Repository) FullyBookedDates(
	ctx context.Context,
	from, to time.Time,
	slots []string,
	statuses []domain.BookingStatus,
) ([]time.Time, error) {
	if len(slots) == 0 || len(statuses) == 0 {
		return []time.Time{}, nil
	}

	bookings, err := r.List(ctx, domain.BookingsFilter{Statuses: statuses, StartDate: &from, EndDate: &to})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		wanted[s] = struct{}{}
	}

	occupied := make(map[string]map[string]struct{})
	order := make([]time.Time, 0)
	for _, b := range bookings {
		if _, ok := wanted[b.TimeSlot]; !ok {
			continue
		}
		key := domain.DateKey(b.Date)
		if occupied[key] == nil {
			occupied[key] = make(map[string]struct{})
			order = append(order, b.Date)
		}
		occupied[key][b.TimeSlot] = struct{}{}
	}

	dates := make([]time.Time, 0)
	for _, d := range order {
		if len(occupied[domain.DateKey(d)]) == len(wanted) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func matches(b *domain.Booking, search string) bool {
	if strings.Contains(strings.ToLower(b.CustomerName), search) ||
		strings.Contains(strings.ToLower(b.Address), search) {
		return true
	}
	return b.Note != nil && strings.Contains(strings.ToLower(*b.Note), search)
}
