package get_slot_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	bookingRepo BookingRepository
	catalog     *domain.SlotCatalog
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, catalog *domain.SlotCatalog, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Execute выполняет use case.
// Данные читаются из хранилища на каждый запрос, без кэша.
// Если хранилище недоступно, все слоты возвращаются свободными с флагом Degraded.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := domain.NormalizeDate(req.Date)

	uc.logger.Info("GetSlotAvailability: date=%s", domain.DateKey(date))

	// 2. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses:  []domain.BookingStatus{domain.StatusBooked},
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		// 3. Хранилище недоступно - fail open
		uc.logger.Warn("GetSlotAvailability: store unavailable for date=%s, reporting all slots free: %v",
			domain.DateKey(date), err)
		return &Response{
			Date:     date,
			Slots:    toSlots(domain.AllSlotsAvailable(uc.catalog)),
			Degraded: true,
			Warning:  DegradedWarning,
		}, nil
	}

	// 4. Вычисляем занятость слотов
	states := domain.SlotAvailability(uc.catalog, date, bookings)

	uc.logger.Info("GetSlotAvailability: date=%s, %d bookings, %d slots",
		domain.DateKey(date), len(bookings), len(states))

	return &Response{
		Date:  date,
		Slots: toSlots(states),
	}, nil
}

func toSlots(states []domain.SlotState) []Slot {
	slots := make([]Slot, 0, len(states))
	for _, s := range states {
		slots = append(slots, Slot{
			TimeSlot:  s.Slot.Label,
			StartTime: s.Slot.StartTime(),
			EndTime:   s.Slot.EndTime(),
			Available: s.Available,
		})
	}
	return slots
}
