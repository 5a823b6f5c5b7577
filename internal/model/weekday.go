package model

import (
	"sort"
	"time"
)

// DaysPerWeek is the number of weekday indices (0 = Monday … 6 = Sunday).
const DaysPerWeek = 7

var weekdayLabels = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// AllWeekdays returns a fresh slice holding every weekday index.
func AllWeekdays() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

// WeekdayIndex maps t onto the Monday-first index used by repeat schedules.
// Calendar weekdays are numbered 1 = Sunday … 7 = Saturday and shifted with
// (weekday + 5) mod 7, so Monday becomes 0 and Sunday 6.
func WeekdayIndex(t time.Time) int {
	calendarWeekday := int(t.Weekday()) + 1
	return (calendarWeekday + 5) % DaysPerWeek
}

// WeekdayLabel returns the short English name for a weekday index.
func WeekdayLabel(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return "?"
	}
	return weekdayLabels[day]
}

// NormalizeDays drops out-of-range and duplicate indices and sorts the rest.
// The result is never nil.
func NormalizeDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d >= DaysPerWeek || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// SameDay reports whether a and b fall on the same calendar day, as seen
// from a's location.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
