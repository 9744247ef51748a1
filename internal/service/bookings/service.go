package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
	"github.com/m04kA/SMC-SlotBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, смена статуса и автозавершение
type Service struct {
	bookingRepo  BookingRepository
	catalog      *domain.SlotCatalog
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	sweepOnRead  bool
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalog *domain.SlotCatalog,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		sweepOnRead:  true,
		logger:       logger,
	}
}

// WithSweepOnRead включает или выключает автозавершение перед List
func (s *Service) WithSweepOnRead(enabled bool) *Service {
	s.sweepOnRead = enabled
	return s
}

// List получает бронирования по фильтру.
// Перед чтением завершает прошедшие бронирования; ошибка автозавершения
// логируется и не прерывает чтение.
//
// Примеры использования:
// - Все бронирования: List(ctx, &ListBookingsRequest{})
// - Только активные: Status = "booked"
// - За период: StartDate и EndDate
// - Поиск по имени, адресу или заметке: Search = "lenina"
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", domain.DateKey(*req.StartDate))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", domain.DateKey(*req.EndDate))
	}
	if req.Search != "" {
		logMsg += fmt.Sprintf(", search=%q", req.Search)
	}
	s.logger.Info(logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Завершаем прошедшие бронирования
	autoCompleted := 0
	if s.sweepOnRead {
		autoCompleted, err = s.CompleteExpired(ctx)
		if err != nil {
			s.logger.Warn("List: auto-complete failed, continuing: %v", err)
		}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings, auto-completed %d", len(bookings), autoCompleted)

	resp := models.FromDomainBookingList(bookings)
	resp.AutoCompleted = autoCompleted
	return resp, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Find ищет бронирование на пару (дата, слот) в статусе (по умолчанию booked).
// Используется, чтобы выяснить результат бронирования, ответ на которое не был получен.
func (s *Service) Find(ctx context.Context, req *models.FindBookingRequest) (*models.BookingResponse, error) {
	timeSlot := strings.TrimSpace(req.TimeSlot)
	if req.Date.IsZero() || timeSlot == "" {
		return nil, fmt.Errorf("%w: date and timeSlot are required", ErrInvalidInput)
	}

	status := domain.StatusBooked
	if strings.TrimSpace(req.Status) != "" {
		parsed, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}

	s.logger.Info("Find: date=%s, slot=%q, status=%s", domain.DateKey(req.Date), timeSlot, status)

	booking, err := s.bookingRepo.Find(ctx, domain.NormalizeDate(req.Date), timeSlot, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Find: no %s booking for %s %q", status, domain.DateKey(req.Date), timeSlot)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Find: repository error: %v", err)
		return nil, fmt.Errorf("%w: Find - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Запрещенный переход возвращает *TransitionError без изменения состояния.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s, status=%s", id, req.Status)

	// 1. Проверяем целевой статус
	to, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.transition(ctx, "UpdateStatus", id, to)
}

// Cancel отменяет активное бронирование
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s", id)
	return s.transition(ctx, "Cancel", id, domain.StatusCanceled)
}

// Delete помечает бронирование удаленным (запись не удаляется физически)
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Delete: booking id=%s", id)
	return s.transition(ctx, "Delete", id, domain.StatusDeleted)
}

// CompleteExpired завершает активные бронирования, слот которых уже закончился.
// Повторный вызов безопасен: обновление условное (booked -> completed).
// Возвращает количество завершенных бронирований.
func (s *Service) CompleteExpired(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	today := s.catalog.Today(now)

	// 1. Активные бронирования до сегодняшнего дня включительно
	candidates, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses: []domain.BookingStatus{domain.StatusBooked},
		EndDate:  &today,
	})
	if err != nil {
		s.logger.Error("CompleteExpired: failed to list active bookings: %v", err)
		return 0, fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrInternal, err)
	}

	promoted := make([]*domain.Booking, 0)
	var failed error

	for _, booking := range candidates {
		// 2. Конец слота в часовом поясе каталога
		end, err := s.catalog.SlotEnd(booking.Date, booking.TimeSlot)
		if err != nil {
			s.logger.Warn("CompleteExpired: skip booking id=%s, unparseable slot %q: %v",
				booking.ID, booking.TimeSlot, err)
			continue
		}
		if !end.Before(now) {
			continue
		}

		// 3. Условное обновление
		err = s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusBooked, domain.StatusCompleted)
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			// Статус уже изменен другим запросом
			continue
		}
		if err != nil {
			s.logger.Error("CompleteExpired: failed to complete booking id=%s: %v", booking.ID, err)
			failed = err
			continue
		}

		booking.Status = domain.StatusCompleted
		booking.UpdatedAt = now
		promoted = append(promoted, booking)
	}

	// 4. События публикуются после всех обновлений
	for _, booking := range promoted {
		s.publisher.PublishBookingEvent(ctx,
			eventbus.NewBookingEvent(eventbus.EventBookingAutoCompleted, booking, domain.StatusBooked, now))
	}

	completed := len(promoted)
	if completed > 0 {
		s.logger.Info("CompleteExpired: completed %d of %d active bookings", completed, len(candidates))
		if s.metrics != nil {
			s.metrics.ObserveAutoCompleted(completed)
		}
	}

	if failed != nil {
		return completed, fmt.Errorf("%w: CompleteExpired - update failed: %v", ErrInternal, failed)
	}

	return completed, nil
}

// transition выполняет переход статуса с проверкой по жизненному циклу
func (s *Service) transition(ctx context.Context, op string, id uuid.UUID, to domain.BookingStatus) (*models.BookingResponse, error) {
	// 1. Получаем бронирование
	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status

	// 2. Проверяем допустимость перехода
	if !domain.CanTransition(from, to) {
		s.logger.Warn("%s: booking id=%s cannot change status %s -> %s", op, id, from, to)
		return nil, &TransitionError{From: from, To: to}
	}

	// 3. Условное обновление
	err = s.bookingRepo.UpdateStatus(ctx, id, from, to)
	if errors.Is(err, bookingRepo.ErrStatusChanged) {
		// Статус изменился параллельно - перечитываем и сообщаем актуальный переход
		current, getErr := s.getBooking(ctx, op, id)
		if getErr != nil {
			return nil, getErr
		}
		s.logger.Warn("%s: booking id=%s changed concurrently to %s", op, id, current.Status)
		return nil, &TransitionError{From: current.Status, To: to}
	}
	if err != nil {
		s.logger.Error("%s: failed to update booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	now := s.timeProvider.Now()
	booking.Status = to
	booking.UpdatedAt = now

	if s.metrics != nil {
		s.metrics.ObserveTransition(string(from), string(to))
	}
	s.publisher.PublishBookingEvent(ctx,
		eventbus.NewBookingEvent(eventbus.EventBookingStatusChanged, booking, from, now))

	s.logger.Info("%s: booking id=%s status %s -> %s", op, id, from, to)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
