package eventbus

import (
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventBookingAutoCompleted EventType = "booking.auto_completed"
)

// BookingEvent сообщение, публикуемое в Kafka
type BookingEvent struct {
	Type           EventType `json:"type"`
	BookingID      string    `json:"bookingId"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"timeSlot"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewBookingEvent собирает событие по бронированию.
// previous пустой для события создания.
func NewBookingEvent(eventType EventType, booking *domain.Booking, previous domain.BookingStatus, at time.Time) BookingEvent {
	return BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID.String(),
		Date:           domain.DateKey(booking.Date),
		TimeSlot:       booking.TimeSlot,
		Status:         string(booking.Status),
		PreviousStatus: string(previous),
		OccurredAt:     at.UTC(),
	}
}
