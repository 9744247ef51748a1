package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Find(ctx context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) error
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event eventbus.BookingEvent)
}

// Metrics счетчики переходов статусов
type Metrics interface {
	ObserveTransition(from, to string)
	ObserveAutoCompleted(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
