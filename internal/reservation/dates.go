package reservation

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into the UTC midnight of that day.
// Calendar days are always handled in UTC so that local offsets cannot
// shift a reservation onto a neighbouring day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
	}
	return t, nil
}

// FormatDate renders a day as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpandRange returns the ordered, inclusive day sequence between start
// and end. The range is symmetric: if start is after end the pair is
// swapped before expansion.
func ExpandRange(start, end time.Time) []time.Time {
	start = StartOfDay(start)
	end = StartOfDay(end)
	if start.After(end) {
		start, end = end, start
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
