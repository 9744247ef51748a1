package domain

import (
	"errors"
	"strings"
)

// ErrUnknownStatus is returned when a string is not a booking status
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// transitions lists the allowed target statuses for every source status.
// Deleted has no outgoing transitions and nothing ever returns to Booked.
var transitions = map[BookingStatus][]BookingStatus{
	StatusBooked:    {StatusCompleted, StatusCanceled, StatusDeleted},
	StatusCompleted: {StatusDeleted},
	StatusCanceled:  {StatusDeleted},
	StatusDeleted:   {},
}

// CanTransition reports whether a booking may move from one status to another.
// Same-status requests are not transitions.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one
func AllowedTransitions(from BookingStatus) []BookingStatus {
	allowed := transitions[from]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// ParseBookingStatus converts a string into a BookingStatus, case-insensitively
func ParseBookingStatus(s string) (BookingStatus, error) {
	candidate := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range AllStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", ErrUnknownStatus
}

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}
