// Package dateutil provides day-granularity date arithmetic over
// canonical day keys. A key is a zero-padded YYYY-MM-DD string, so
// lexicographic comparison of keys matches chronological order.
package dateutil

import "time"

// KeyLayout is the canonical day key format
const KeyLayout = "2006-01-02"

// GridCells is the fixed size of a month grid: 6 full weeks
const GridCells = 42

// Key returns the canonical day key for t, dropping any time of day
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Parse converts a day key back to a time.Time at midnight UTC
func Parse(key string) (time.Time, error) {
	return time.Parse(KeyLayout, key)
}

// AddDays returns the key n days offset from key; n may be negative.
// An unparseable key is returned unchanged.
func AddDays(key string, n int) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return Key(t.AddDate(0, 0, n))
}

// DaysBetween returns the whole-day count from a to b (negative when
// b precedes a). Zero when either key is unparseable.
func DaysBetween(a, b string) int {
	ta, err := Parse(a)
	if err != nil {
		return 0
	}
	tb, err := Parse(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// InRange reports whether start <= date <= end, inclusive both ends
func InRange(date, start, end string) bool {
	return start <= date && date <= end
}

// Intersect reports whether the inclusive ranges [aStart,aEnd] and
// [bStart,bEnd] share at least one day
func Intersect(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// MonthGrid returns the 42 dates shown for anchor's month: 6 full weeks
// beginning on the Sunday on or before the 1st, so leading and trailing
// days from adjacent months always fill complete rows.
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, GridCells)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
