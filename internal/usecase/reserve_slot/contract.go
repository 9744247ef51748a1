package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
	"github.com/m04kA/SMC-SlotBooking/internal/integrations/eventbus"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Find(ctx context.Context, date time.Time, timeSlot string, status domain.BookingStatus) (*domain.Booking, error)
	Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotLocker блокировка пары (дата, слот) на время проверки и вставки
type SlotLocker interface {
	WithSlotLock(ctx context.Context, date time.Time, timeSlot string, fn func(ctx context.Context) error) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event eventbus.BookingEvent)
}

// Metrics счетчики результатов бронирования
type Metrics interface {
	ObserveReservation(result string)
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
