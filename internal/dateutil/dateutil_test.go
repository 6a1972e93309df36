package dateutil

import (
	"testing"
	"time"
)

func TestKeyOrderingMatchesChronology(t *testing.T) {
	// Keys must compare lexicographically in chronological order,
	// including across month and year boundaries
	dates := []time.Time{
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := 1; i < len(dates); i++ {
		a, b := Key(dates[i-1]), Key(dates[i])
		if !(a < b) {
			t.Errorf("expected %q < %q", a, b)
		}
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2024-03-10", 2, "2024-03-12"},
		{"2024-03-10", -1, "2024-03-09"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-01-01", -1, "2023-12-31"},
		{"2024-03-10", 0, "2024-03-10"},
	}
	for _, tt := range tests {
		if got := AddDays(tt.key, tt.n); got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-03-10", "2024-03-12", 2},
		{"2024-03-12", "2024-03-10", -2},
		{"2024-03-10", "2024-03-10", 0},
		{"2024-02-28", "2024-03-01", 2}, // across leap day
		{"2024-12-30", "2025-01-02", 3},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		date, start, end string
		want             bool
	}{
		{"2024-03-11", "2024-03-10", "2024-03-12", true},
		{"2024-03-10", "2024-03-10", "2024-03-12", true}, // inclusive start
		{"2024-03-12", "2024-03-10", "2024-03-12", true}, // inclusive end
		{"2024-03-13", "2024-03-10", "2024-03-12", false},
		{"2024-03-09", "2024-03-10", "2024-03-12", false},
		{"2024-03-10", "2024-03-10", "2024-03-10", true}, // single-day range
	}
	for _, tt := range tests {
		if got := InRange(tt.date, tt.start, tt.end); got != tt.want {
			t.Errorf("InRange(%q, %q, %q) = %v, want %v", tt.date, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"overlap", "2024-03-10", "2024-03-15", "2024-03-12", "2024-03-20", true},
		{"touching endpoints", "2024-03-10", "2024-03-12", "2024-03-12", "2024-03-14", true},
		{"contained", "2024-03-01", "2024-03-31", "2024-03-10", "2024-03-12", true},
		{"disjoint before", "2024-03-01", "2024-03-05", "2024-03-06", "2024-03-10", false},
		{"disjoint after", "2024-03-06", "2024-03-10", "2024-03-01", "2024-03-05", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersect(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantFirst string
		wantLast  string
	}{
		{
			// March 2024 starts on a Friday
			"typical month",
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			"2024-02-25",
			"2024-04-06",
		},
		{
			// Feb 2024: leap year, 1st is a Thursday
			"february leap year",
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			"2024-01-28",
			"2024-03-09",
		},
		{
			// Dec 2024 rolls into January 2025
			"year rollover",
			time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			"2024-12-01",
			"2025-01-11",
		},
		{
			// Sep 2024: the 1st is itself a Sunday, grid starts on it
			"first is sunday",
			time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			"2024-09-01",
			"2024-10-12",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := MonthGrid(tt.anchor)
			if len(grid) != GridCells {
				t.Fatalf("got %d cells, want %d", len(grid), GridCells)
			}
			if grid[0].Weekday() != time.Sunday {
				t.Errorf("grid starts on %v, want Sunday", grid[0].Weekday())
			}
			if got := Key(grid[0]); got != tt.wantFirst {
				t.Errorf("first cell %q, want %q", got, tt.wantFirst)
			}
			if got := Key(grid[GridCells-1]); got != tt.wantLast {
				t.Errorf("last cell %q, want %q", got, tt.wantLast)
			}
			// Consecutive days throughout
			for i := 1; i < len(grid); i++ {
				if Key(grid[i]) != AddDays(Key(grid[i-1]), 1) {
					t.Fatalf("cells %d and %d are not consecutive days", i-1, i)
				}
			}
		})
	}
}
