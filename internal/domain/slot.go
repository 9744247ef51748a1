package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeSlot is returned when a slot label cannot be parsed
var ErrInvalidTimeSlot = errors.New("domain: invalid time slot")

const minutesPerDay = 24 * 60

// TimeSlot is a named interval of a service day
type TimeSlot struct {
	Label        string
	StartMinutes int // minutes after midnight
	EndMinutes   int // minutes after midnight, 1440 means end of day
}

// StartTime returns the slot start formatted as HH:MM
func (s TimeSlot) StartTime() string {
	return formatMinutes(s.StartMinutes)
}

// EndTime returns the slot end formatted as HH:MM
func (s TimeSlot) EndTime() string {
	return formatMinutes(s.EndMinutes)
}

// EndOn returns the moment the slot ends on the given civil date in loc
func (s TimeSlot) EndOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, s.EndMinutes, 0, 0, loc)
}

// StartOn returns the moment the slot starts on the given civil date in loc
func (s TimeSlot) StartOn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, s.StartMinutes, 0, 0, loc)
}

// boundary is one side of a slot label, e.g. "4 PM" or "16:00"
type boundary struct {
	hour     int
	minute   int
	meridiem string // "AM", "PM" or empty
	clock    bool   // written as H:MM
}

// ParseTimeSlot parses labels like "2-4 PM", "2 PM-4 PM", "2:30-4 PM" or "14:00-16:00".
// A boundary without AM/PM inherits the meridiem of the other boundary.
func ParseTimeSlot(label string) (TimeSlot, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidTimeSlot, label)
	}

	start, err := parseBoundary(parts[0])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q start: %v", ErrInvalidTimeSlot, label, err)
	}
	end, err := parseBoundary(parts[1])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q end: %v", ErrInvalidTimeSlot, label, err)
	}

	startMinutes, endMinutes, err := resolveBoundaries(start, end)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeSlot, label, err)
	}

	return TimeSlot{
		Label:        strings.TrimSpace(label),
		StartMinutes: startMinutes,
		EndMinutes:   endMinutes,
	}, nil
}

func parseBoundary(raw string) (boundary, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	var b boundary

	for _, m := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, m) {
			b.meridiem = m
			s = strings.TrimSpace(strings.TrimSuffix(s, m))
			break
		}
	}
	if s == "" {
		return b, errors.New("empty boundary")
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return b, fmt.Errorf("bad hour %q", hourPart)
	}
	b.hour = hour

	if hasMinutes {
		minute, err := strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return b, fmt.Errorf("bad minute %q", minutePart)
		}
		b.minute = minute
		b.clock = true
	}

	if b.meridiem != "" {
		if b.hour < 1 || b.hour > 12 {
			return b, fmt.Errorf("hour %d out of 1..12", b.hour)
		}
	} else if b.hour < 0 || b.hour > 24 || (b.hour == 24 && b.minute != 0) {
		return b, fmt.Errorf("hour %d out of 0..24", b.hour)
	}

	return b, nil
}

func resolveBoundaries(start, end boundary) (int, int, error) {
	switch {
	case start.meridiem == "" && end.meridiem == "":
		if start.hour > 12 || end.hour > 12 || start.clock || end.clock || start.hour == 0 {
			// 24-hour notation
			s, e := start.hour*60+start.minute, end.hour*60+end.minute
			if e == 0 {
				e = minutesPerDay
			}
			if s >= e {
				return 0, 0, errors.New("start must precede end")
			}
			return s, e, nil
		}
		return 0, 0, errors.New("ambiguous 12-hour boundaries without AM/PM")

	case start.meridiem == "":
		start.meridiem = end.meridiem
		if toMinutes(end, true) == minutesPerDay {
			// "12 AM" closing the day belongs to the evening
			start.meridiem = "PM"
		}
		if toMinutes(start, false) >= toMinutes(end, true) {
			start.meridiem = opposite(end.meridiem)
		}

	case end.meridiem == "":
		end.meridiem = start.meridiem
		if toMinutes(end, true) <= toMinutes(start, false) {
			end.meridiem = opposite(start.meridiem)
		}
	}

	s, e := toMinutes(start, false), toMinutes(end, true)
	if s >= e {
		return 0, 0, errors.New("start must precede end")
	}
	return s, e, nil
}

// toMinutes converts a 12-hour boundary; "12 AM" as an end boundary is midnight at the end of the day
func toMinutes(b boundary, isEnd bool) int {
	hour := b.hour % 12
	if b.meridiem == "PM" {
		hour += 12
	}
	minutes := hour*60 + b.minute
	if isEnd && minutes == 0 {
		return minutesPerDay
	}
	return minutes
}

func opposite(meridiem string) string {
	if meridiem == "AM" {
		return "PM"
	}
	return "AM"
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
