package export_calendar

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// UseCase use case для экспорта календаря бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      *domain.SlotCatalog
	policy       domain.OccupancyPolicy
	maxRangeDays int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// policy - статусы, которые показываются в календаре и занимают слот (по умолчанию booked и completed).
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	policy domain.OccupancyPolicy,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	if len(policy) == 0 {
		policy = domain.CalendarOccupancy
	}
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		policy:       policy,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from := domain.NormalizeDate(req.From)
	to := domain.NormalizeDate(req.To)

	// 1. Валидация периода
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to %s is before from %s", ErrInvalidInput, domain.DateKey(to), domain.DateKey(from))
	}
	dates := domain.DatesBetween(from, to)
	if len(dates) > uc.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, len(dates), uc.maxRangeDays)
	}

	uc.logger.Info("ExportCalendar: from=%s, to=%s", domain.DateKey(from), domain.DateKey(to))

	// 2. Получаем бронирования календарных статусов
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses:  uc.policy,
		StartDate: &from,
		EndDate:   &to,
	})
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrStoreUnavailable, err)
	}

	// 3. Вычисляем полностью занятые даты
	fullyBooked := domain.FullyBookedDates(uc.catalog, bookings, uc.policy)

	// 4. Группируем по датам (список уже упорядочен по дате и слоту)
	byDate := make(map[string][]Booking)
	for _, b := range bookings {
		key := domain.DateKey(b.Date)
		byDate[key] = append(byDate[key], Booking{
			ID:           b.ID,
			TimeSlot:     b.TimeSlot,
			CustomerName: b.CustomerName,
			Address:      b.Address,
			Note:         b.Note,
			Status:       string(b.Status),
		})
	}

	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		dayBookings := byDate[domain.DateKey(d)]
		if dayBookings == nil {
			dayBookings = []Booking{}
		}
		days = append(days, Day{
			Date:        d,
			OffDay:      uc.catalog.IsOffDay(d),
			FullyBooked: fullyBooked.Has(d),
			Bookings:    dayBookings,
		})
	}

	uc.logger.Info("ExportCalendar: %d days, %d bookings, %d fully booked", len(days), len(bookings), len(fullyBooked))

	return &Response{From: from, To: to, Days: days}, nil
}
