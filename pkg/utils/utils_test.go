package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no rounding needed", "10.50", "10.5"},
		{"rounds half up", "10.005", "10.01"},
		{"truncates drift", "33.333333", "33.33"},
		{"negative", "-0.005", "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, _ := decimal.NewFromString(tt.input)
			assert.Equal(t, tt.expected, RoundMoney(input).String())
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{"same month", date(2024, time.March, 1), date(2024, time.March, 31), 0},
		{"adjacent months ignore days", date(2024, time.March, 31), date(2024, time.April, 1), 1},
		{"across year boundary", date(2023, time.November, 15), date(2024, time.February, 10), 3},
		{"negative when to precedes from", date(2024, time.May, 1), date(2024, time.March, 1), -2},
		{"several years", date(2021, time.January, 1), date(2024, time.January, 1), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(date(2024, time.March, 1), date(2024, time.March, 31)))
	assert.False(t, SameMonth(date(2024, time.March, 1), date(2024, time.April, 1)))
	assert.False(t, SameMonth(date(2023, time.March, 1), date(2024, time.March, 1)))
}

func TestIsSameOrBeforeMonth(t *testing.T) {
	ref := date(2024, time.June, 15)

	assert.True(t, IsSameOrBeforeMonth(date(2024, time.June, 30), ref))
	assert.True(t, IsSameOrBeforeMonth(date(2024, time.January, 1), ref))
	assert.False(t, IsSameOrBeforeMonth(date(2024, time.July, 1), ref))
}

func TestAfterDay(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Time
		ref      time.Time
		expected bool
	}{
		{"next day", date(2024, time.March, 2), date(2024, time.March, 1), true},
		{"same day different hours", time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC), time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC), false},
		{"previous day", date(2024, time.March, 1), date(2024, time.March, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AfterDay(tt.d, tt.ref))
		})
	}
}

func TestFirstSaturday(t *testing.T) {
	// June 2024 starts on a Saturday; July 2024 on a Monday
	assert.Equal(t, date(2024, time.June, 1), FirstSaturday(date(2024, time.June, 20)))
	assert.Equal(t, date(2024, time.July, 6), FirstSaturday(date(2024, time.July, 2)))
}

func TestPastFirstSaturday(t *testing.T) {
	assert.False(t, PastFirstSaturday(date(2024, time.July, 6)))
	assert.False(t, PastFirstSaturday(date(2024, time.July, 2)))
	assert.True(t, PastFirstSaturday(date(2024, time.July, 7)))
}

func TestStartOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), StartOfMonth(date(2024, time.February, 29)))
}
