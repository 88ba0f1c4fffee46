package schedule

import "time"

// Calendar helpers for the generator. All schedule math happens on midnight
// UTC dates; callers are expected to normalize with DateOf before comparing.

const dateLayout = "2006-01-02"

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ISOWeekday returns the ISO-8601 weekday of t: Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.UTC().Weekday())
	if wd == 0 { // time.Sunday
		return 7
	}
	return wd
}

// WeekBounds returns the Monday-anchored week containing t, as midnight UTC
// dates: start is Monday, end is the following Sunday.
func WeekBounds(t time.Time) (start, end time.Time) {
	d := DateOf(t)
	start = d.AddDate(0, 0, -(ISOWeekday(d) - 1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// DaysBetween returns the number of whole days from a to b (b - a).
// Both arguments must already be midnight UTC dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// DateKey formats a date as YYYY-MM-DD for map keys and synthetic IDs.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a midnight UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
