package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestResolveDateRange(t *testing.T) {
	now := date(2024, time.June, 15)

	tests := []struct {
		period    string
		wantStart string
		wantEnd   string
		wantLabel string
	}{
		{"current_month", "2024-06-01", "2024-06-30", "This Month"},
		{"last_month", "2024-05-01", "2024-05-31", "Last Month"},
		{"last_3_months", "2024-04-01", "2024-06-30", "Last 3 Months"},
		{"last_6_months", "2024-01-01", "2024-06-30", "Last 6 Months"},
		{"current_year", "2024-01-01", "2024-12-31", "This Year"},
		{"last_year", "2023-01-01", "2023-12-31", "Last Year"},
		{"", "2024-06-01", "2024-06-30", "This Month"},
		{"bogus_period", "2024-06-01", "2024-06-30", "This Month"},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got := resolveDateRange(tt.period, now)
			assert.Equal(t, tt.wantStart, got.StartDate)
			assert.Equal(t, tt.wantEnd, got.EndDate)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestResolveDateRangeYearRollover(t *testing.T) {
	january := date(2024, time.January, 10)

	got := resolveDateRange("last_month", january)
	assert.Equal(t, "2023-12-01", got.StartDate)
	assert.Equal(t, "2023-12-31", got.EndDate)

	// Trailing windows reach back across the boundary too
	got = resolveDateRange("last_3_months", january)
	assert.Equal(t, "2023-11-01", got.StartDate)
	assert.Equal(t, "2024-01-31", got.EndDate)

	got = resolveDateRange("last_6_months", january)
	assert.Equal(t, "2023-08-01", got.StartDate)
	assert.Equal(t, "2024-01-31", got.EndDate)
}

func TestResolveDateRangeMonthLengths(t *testing.T) {
	// Leap February
	got := resolveDateRange("current_month", date(2024, time.February, 5))
	assert.Equal(t, "2024-02-29", got.EndDate)

	// Non-leap February
	got = resolveDateRange("current_month", date(2023, time.February, 5))
	assert.Equal(t, "2023-02-28", got.EndDate)

	// 30-day month reached via offset
	got = resolveDateRange("last_month", date(2024, time.May, 1))
	assert.Equal(t, "2024-04-30", got.EndDate)
}

func TestResolveDateRangeInvariants(t *testing.T) {
	periods := []string{
		"current_month", "last_month", "last_3_months",
		"last_6_months", "current_year", "last_year",
	}

	// Sweep a few representative instants, including year boundaries
	nows := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.June, 15),
		date(2024, time.December, 31),
		date(2025, time.March, 31),
	}

	for _, now := range nows {
		for _, period := range periods {
			got := resolveDateRange(period, now)
			assert.LessOrEqual(t, got.StartDate, got.EndDate,
				"start must not exceed end for %s at %s", period, now)

			// Same instant, same answer
			again := resolveDateRange(period, now)
			assert.Equal(t, got, again)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, isValidDate("2024-06-15"))
	assert.True(t, isValidDate("2024-02-29"))
	assert.False(t, isValidDate("2023-02-29"))
	assert.False(t, isValidDate("2024-13-01"))
	assert.False(t, isValidDate("15-06-2024"))
	assert.False(t, isValidDate("2024-6-15"))
	assert.False(t, isValidDate("not-a-date"))
	assert.False(t, isValidDate(""))
}
