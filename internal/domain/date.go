package domain

import "time"

// DateOf returns the civil date of t as seen in loc, as midnight UTC
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDate drops the clock and zone of a date value read from storage or input
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a civil date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// DateKey formats a civil date as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DatesBetween returns every civil date from start to end inclusive
func DatesBetween(start, end time.Time) []time.Time {
	start, end = NormalizeDate(start), NormalizeDate(end)
	if end.Before(start) {
		return nil
	}
	dates := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
