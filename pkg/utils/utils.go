package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary value to 2 decimal places.
// Every calculator output passes through this before being returned so
// rounding drift never accumulates across repeated additions.
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// MonthsBetween returns the whole calendar-month difference between two
// dates (to's month/year minus from's), independent of day-of-month.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// SameMonth reports whether two dates fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsSameOrBeforeMonth reports whether d's calendar month is the same as or
// earlier than ref's.
func IsSameOrBeforeMonth(d, ref time.Time) bool {
	return MonthsBetween(d, ref) >= 0
}

// AfterDay reports whether d is strictly after ref at day granularity,
// ignoring time-of-day.
func AfterDay(d, ref time.Time) bool {
	return truncateDay(d).After(truncateDay(ref))
}

// FirstSaturday returns the date of the first Saturday of now's month.
func FirstSaturday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for day.Weekday() != time.Saturday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// PastFirstSaturday reports whether now is past the first Saturday of its
// month. Used as the grace boundary for the first missed contribution.
func PastFirstSaturday(now time.Time) bool {
	return AfterDay(now, FirstSaturday(now))
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

func truncateDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
