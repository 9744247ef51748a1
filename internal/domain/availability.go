package domain

import "time"

// OccupancyPolicy is the set of statuses that count as occupying a slot
// when deciding whether a date is fully booked
type OccupancyPolicy []BookingStatus

// Occupies reports whether a booking in the given status counts against its slot
func (p OccupancyPolicy) Occupies(status BookingStatus) bool {
	for _, s := range p {
		if s == status {
			return true
		}
	}
	return false
}

// SlotState availability of one slot on a date
type SlotState struct {
	Slot      TimeSlot
	Available bool
}

// DisabledReason explains why a date cannot be picked
type DisabledReason string

const (
	ReasonPast          DisabledReason = "past"
	ReasonOffDay        DisabledReason = "off_day"
	ReasonBeyondHorizon DisabledReason = "beyond_horizon"
	ReasonFullyBooked   DisabledReason = "fully_booked"
)

// DisabledDate a date that cannot be picked and the first reason that applies
type DisabledDate struct {
	Date   time.Time
	Reason DisabledReason
}

// DateSet set of civil dates keyed by YYYY-MM-DD
type DateSet map[string]struct{}

// NewDateSet builds a set from dates
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s DateSet) Add(date time.Time) {
	s[DateKey(NormalizeDate(date))] = struct{}{}
}

func (s DateSet) Has(date time.Time) bool {
	_, ok := s[DateKey(NormalizeDate(date))]
	return ok
}

// SlotAvailability reports, in catalog order, which slots of date are free.
// Only a booking in status Booked on the exact pair blocks a slot.
func SlotAvailability(catalog *SlotCatalog, date time.Time, bookings []*Booking) []SlotState {
	date = NormalizeDate(date)

	taken := make(map[string]bool)
	for _, b := range bookings {
		if b.Status == StatusBooked && NormalizeDate(b.Date).Equal(date) {
			taken[b.TimeSlot] = true
		}
	}

	states := make([]SlotState, 0, catalog.Len())
	for _, slot := range catalog.slots {
		states = append(states, SlotState{
			Slot:      slot,
			Available: !taken[slot.Label],
		})
	}
	return states
}

// AllSlotsAvailable every catalog slot marked available
func AllSlotsAvailable(catalog *SlotCatalog) []SlotState {
	states := make([]SlotState, 0, catalog.Len())
	for _, slot := range catalog.slots {
		states = append(states, SlotState{Slot: slot, Available: true})
	}
	return states
}

// FullyBookedDates returns the dates on which every catalog slot has a booking
// in a status occupying it under the policy
func FullyBookedDates(catalog *SlotCatalog, bookings []*Booking, policy OccupancyPolicy) DateSet {
	occupied := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if !policy.Occupies(b.Status) || !catalog.Contains(b.TimeSlot) {
			continue
		}
		key := DateKey(NormalizeDate(b.Date))
		if occupied[key] == nil {
			occupied[key] = make(map[string]struct{})
		}
		occupied[key][b.TimeSlot] = struct{}{}
	}

	full := make(DateSet)
	for key, slots := range occupied {
		if len(slots) == catalog.Len() {
			full[key] = struct{}{}
		}
	}
	return full
}

// DisabledDates returns the candidates that cannot be picked, in candidate order.
// Dates before today, off-days, dates past the booking horizon (maxAdvanceDays > 0)
// and fully booked dates are disabled.
func DisabledDates(catalog *SlotCatalog, candidates []time.Time, fullyBooked DateSet, now time.Time, maxAdvanceDays int) []DisabledDate {
	disabled := make([]DisabledDate, 0)
	for _, candidate := range candidates {
		date := NormalizeDate(candidate)

		switch {
		case catalog.IsPast(date, now):
			disabled = append(disabled, DisabledDate{Date: date, Reason: ReasonPast})
		case catalog.IsOffDay(date):
			disabled = append(disabled, DisabledDate{Date: date, Reason: ReasonOffDay})
		case catalog.IsBeyondHorizon(date, now, maxAdvanceDays):
			disabled = append(disabled, DisabledDate{Date: date, Reason: ReasonBeyondHorizon})
		case fullyBooked.Has(date):
			disabled = append(disabled, DisabledDate{Date: date, Reason: ReasonFullyBooked})
		}
	}
	return disabled
}
