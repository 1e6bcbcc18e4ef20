package booking

import "time"

// DateLayout is the wire format for calendar dates. The API exchanges
// dates without a time-of-day or timezone component.
const DateLayout = "2006-01-02"

// DateOf truncates t to a calendar date at UTC midnight. All dates
// handled by the engine are normalized through this function so that
// interval arithmetic is an exact whole-day computation.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders a normalized date back to its wire format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
