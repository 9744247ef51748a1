package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/slotlock"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
)

// Результаты попытки бронирования для метрик
const (
	resultCreated          = "created"
	resultConflict         = "conflict"
	resultInvalid          = "invalid"
	resultStoreUnavailable = "store_unavailable"
)

// UseCase use case для бронирования слота
type UseCase struct {
	bookingRepo    BookingRepository
	catalog        *domain.SlotCatalog
	locker         SlotLocker
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	timeProvider   TimeProvider
	maxAdvanceDays int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	locker SlotLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithMaxAdvanceDays ограничивает горизонт бронирования (0 - без ограничения)
func (uc *UseCase) WithMaxAdvanceDays(days int) *UseCase {
	uc.maxAdvanceDays = days
	return uc
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования слота.
// Проверка занятости и вставка выполняются под блокировкой слота и в одной транзакции;
// последней линией защиты служит уникальный индекс на активные бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalized := normalizeRequest(req)
	uc.logger.Info("ReserveSlot: date=%s, slot=%q", domain.DateKey(normalized.Date), normalized.TimeSlot)

	// 1. Валидация данных клиента
	if err := validateCustomerDetails(&normalized); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	// 2. Валидация даты и слота
	now := uc.timeProvider.Now()
	slot, err := validateSlot(uc.catalog, &normalized, now, uc.maxAdvanceDays)
	if err != nil {
		uc.logger.Warn("ReserveSlot: slot validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	var result *domain.Booking

	reserve := func(lockCtx context.Context) error {
		return uc.txManager.Do(lockCtx, func(txCtx context.Context) error {
			// 3.1. Проверяем, что слот свободен
			existing, err := uc.bookingRepo.Find(txCtx, normalized.Date, slot.Label, domain.StatusBooked)
			if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("ReserveSlot: failed to check slot: %v", err)
				return fmt.Errorf("%w: failed to check slot: %v", ErrStoreUnavailable, err)
			}
			if existing != nil {
				uc.logger.Warn("ReserveSlot: slot %s %q already booked by id=%s",
					domain.DateKey(normalized.Date), slot.Label, existing.ID)
				return ErrSlotNotAvailable
			}

			// 3.2. Создаем бронирование
			created, err := uc.bookingRepo.Insert(txCtx, &domain.Booking{
				Date:             normalized.Date,
				TimeSlot:         slot.Label,
				SlotStartMinutes: slot.StartMinutes,
				CustomerName:     normalized.CustomerName,
				Address:          normalized.Address,
				Note:             normalized.Note,
				Status:           domain.StatusBooked,
			})
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotTaken) {
					uc.logger.Warn("ReserveSlot: slot %s %q taken concurrently",
						domain.DateKey(normalized.Date), slot.Label)
					return ErrSlotNotAvailable
				}
				uc.logger.Error("ReserveSlot: failed to insert booking: %v", err)
				return fmt.Errorf("%w: failed to insert booking: %v", ErrStoreUnavailable, err)
			}

			result = created
			return nil
		})
	}

	// 3. Бронируем под блокировкой слота
	err = uc.locker.WithSlotLock(ctx, normalized.Date, slot.Label, reserve)
	switch {
	case errors.Is(err, slotlock.ErrLockNotAcquired):
		uc.logger.Warn("ReserveSlot: slot %s %q is being reserved by another request",
			domain.DateKey(normalized.Date), slot.Label)
		err = ErrSlotNotAvailable
	case errors.Is(err, slotlock.ErrLockUnavailable):
		// Блокировка недоступна - полагаемся на транзакцию и уникальный индекс
		uc.logger.Warn("ReserveSlot: slot lock unavailable, proceeding without it: %v", err)
		err = reserve(ctx)
	}

	if err != nil {
		if !errors.Is(err, ErrSlotNotAvailable) && !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		uc.observeError(err)
		return nil, err
	}

	uc.observe(resultCreated)
	uc.logger.Info("ReserveSlot: successfully created booking id=%s", result.ID)

	// 4. Публикуем событие (ошибки публикации не влияют на результат)
	uc.publisher.PublishBookingEvent(ctx, eventbus.NewBookingEvent(eventbus.EventBookingCreated, result, "", now))

	return &Response{
		ID:           result.ID,
		Date:         result.Date,
		TimeSlot:     result.TimeSlot,
		CustomerName: result.CustomerName,
		Address:      result.Address,
		Note:         result.Note,
		Status:       string(result.Status),
		CreatedAt:    result.CreatedAt,
	}, nil
}

func (uc *UseCase) observeError(err error) {
	if errors.Is(err, ErrSlotNotAvailable) {
		uc.observe(resultConflict)
		return
	}
	uc.observe(resultStoreUnavailable)
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReservation(result)
	}
}
