package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCatalog is returned when the slot catalog configuration is unusable
var ErrInvalidCatalog = errors.New("domain: invalid slot catalog")

// SlotCatalog is the fixed ordered set of daily slots and the weekly off-day.
// It is immutable for the life of the process.
type SlotCatalog struct {
	slots  []TimeSlot
	index  map[string]int
	offDay time.Weekday
	loc    *time.Location
}

// NewSlotCatalog builds a catalog from slot labels in display order
func NewSlotCatalog(labels []string, offDay time.Weekday, loc *time.Location) (*SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no slots configured", ErrInvalidCatalog)
	}
	if offDay < time.Sunday || offDay > time.Saturday {
		return nil, fmt.Errorf("%w: off-day %d out of range", ErrInvalidCatalog, offDay)
	}
	if loc == nil {
		loc = time.Local
	}

	c := &SlotCatalog{
		slots:  make([]TimeSlot, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
		offDay: offDay,
		loc:    loc,
	}

	for _, label := range labels {
		slot, err := ParseTimeSlot(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.index[slot.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate slot %q", ErrInvalidCatalog, slot.Label)
		}
		c.index[slot.Label] = len(c.slots)
		c.slots = append(c.slots, slot)
	}

	return c, nil
}

// DefaultSlotCatalog four evening slots, closed on Sundays
func DefaultSlotCatalog(loc *time.Location) *SlotCatalog {
	c, err := NewSlotCatalog(DefaultSlotLabels, DefaultOffDay, loc)
	if err != nil {
		panic(err)
	}
	return c
}

// Slots returns the slots in catalog order
func (c *SlotCatalog) Slots() []TimeSlot {
	out := make([]TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Labels returns the slot labels in catalog order
func (c *SlotCatalog) Labels() []string {
	out := make([]string, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.Label
	}
	return out
}

// Len number of slots per day
func (c *SlotCatalog) Len() int {
	return len(c.slots)
}

// Lookup finds a slot by its exact label
func (c *SlotCatalog) Lookup(label string) (TimeSlot, bool) {
	i, ok := c.index[label]
	if !ok {
		return TimeSlot{}, false
	}
	return c.slots[i], true
}

// Contains reports whether label is a catalog slot
func (c *SlotCatalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

// OffDay the weekly non-operating day
func (c *SlotCatalog) OffDay() time.Weekday {
	return c.offDay
}

// IsOffDay reports whether the civil date falls on the off-day
func (c *SlotCatalog) IsOffDay(date time.Time) bool {
	return date.Weekday() == c.offDay
}

// Location the single local zone of the business
func (c *SlotCatalog) Location() *time.Location {
	return c.loc
}

// Today returns the current civil date in the catalog zone
func (c *SlotCatalog) Today(now time.Time) time.Time {
	return DateOf(now, c.loc)
}

// IsPast reports whether the civil date is strictly before today
func (c *SlotCatalog) IsPast(date time.Time, now time.Time) bool {
	return NormalizeDate(date).Before(c.Today(now))
}

// IsBeyondHorizon reports whether the civil date is more than maxAdvanceDays after today.
// A non-positive maxAdvanceDays means there is no horizon.
func (c *SlotCatalog) IsBeyondHorizon(date time.Time, now time.Time, maxAdvanceDays int) bool {
	if maxAdvanceDays <= 0 {
		return false
	}
	return NormalizeDate(date).After(c.Today(now).AddDate(0, 0, maxAdvanceDays))
}

// SlotEnd returns when the slot with the given label ends on date.
// Labels no longer in the catalog are parsed directly.
func (c *SlotCatalog) SlotEnd(date time.Time, label string) (time.Time, error) {
	slot, ok := c.Lookup(label)
	if !ok {
		parsed, err := ParseTimeSlot(label)
		if err != nil {
			return time.Time{}, err
		}
		slot = parsed
	}
	return slot.EndOn(date, c.loc), nil
}
