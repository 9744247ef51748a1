package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
	StatusDeleted   BookingStatus = "deleted"
)

// Booking is a reservation of exactly one (date, time slot) pair
type Booking struct {
	ID               uuid.UUID
	Date             time.Time // civil date, midnight UTC
	TimeSlot         string
	SlotStartMinutes int // minutes after midnight, used for ordering
	CustomerName     string
	Address          string
	Note             *string
	Status           BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked
}

// IsTerminal returns true if no transition leaves the current status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusDeleted
}

// BookingsFilter selects bookings from the store.
// Zero values mean "no restriction".
type BookingsFilter struct {
	Statuses  []BookingStatus
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive
	Search    string     // case-insensitive substring of name, address or note
}
