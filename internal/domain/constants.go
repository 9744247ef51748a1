package domain

import "time"

// Customer details limits
const (
	MaxCustomerNameLength = 100
	MaxAddressLength      = 200
	MaxNoteLength         = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// Catalog defaults
const (
	DefaultOffDay       = time.Sunday
	DefaultMaxRangeDays = 92
)

// DefaultSlotLabels four two-hour windows covering the afternoon and evening
var DefaultSlotLabels = []string{"2-4 PM", "4-6 PM", "6-8 PM", "8-10 PM"}

// AllStatuses every known booking status
var AllStatuses = []BookingStatus{
	StatusBooked,
	StatusCompleted,
	StatusCanceled,
	StatusDeleted,
}

// InteractiveOccupancy statuses that make a date fully booked for the date picker
var InteractiveOccupancy = OccupancyPolicy{StatusBooked}

// CalendarOccupancy statuses that make a date fully booked for calendar export
var CalendarOccupancy = OccupancyPolicy{StatusBooked, StatusCompleted}
