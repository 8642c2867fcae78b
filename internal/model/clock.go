package model

import "time"

// Clock supplies the current moment. Goals and days never read the wall
// clock directly; a Clock is injected at construction so tests can pin
// "today" to a fixed date.
type Clock func() time.Time

// SystemClock reads the real wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// DateLayout is the date-only format every GoalDay date uses.
const DateLayout = "2006-01-02"

// FormatDate renders the date-only part of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// todayOf returns the clock's current date as a yyyy-MM-dd string.
// ISO date strings order lexically, so all before/after comparisons in
// this package are plain string comparisons, which sidesteps time zone
// drift between parsed dates (UTC) and the clock (local).
func todayOf(now Clock) string {
	return FormatDate(now())
}

// yesterdayOf returns the date one calendar day before the clock's today.
func yesterdayOf(now Clock) string {
	return FormatDate(now().AddDate(0, 0, -1))
}
