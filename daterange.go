package main

import (
	"time"
)

const dateLayout = "2006-01-02"

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// DateRange is a pair of inclusive calendar dates with a display label
type DateRange struct {
	StartDate string
	EndDate   string
	Label     string
}

// firstOfMonth returns the first day of the month offset months from the
// month containing ref. time.Date normalizes out-of-range months, so offsets
// roll over year boundaries correctly.
func firstOfMonth(ref time.Time, offset int) time.Time {
	return time.Date(ref.Year(), ref.Month()+time.Month(offset), 1, 0, 0, 0, 0, ref.Location())
}

// lastOfMonth returns the last day of the month offset months from the month
// containing ref. Day 0 of the following month resolves to the actual month
// length (28-31 days).
func lastOfMonth(ref time.Time, offset int) time.Time {
	return time.Date(ref.Year(), ref.Month()+time.Month(offset)+1, 0, 0, 0, 0, 0, ref.Location())
}

// resolveDateRange converts a period token into concrete inclusive date
// bounds relative to now. Unrecognized tokens behave as current_month.
func resolveDateRange(period string, now time.Time) DateRange {
	switch period {
	case "last_month":
		return DateRange{
			StartDate: firstOfMonth(now, -1).Format(dateLayout),
			EndDate:   lastOfMonth(now, -1).Format(dateLayout),
			Label:     "Last Month",
		}
	case "last_3_months":
		return DateRange{
			StartDate: firstOfMonth(now, -2).Format(dateLayout),
			EndDate:   lastOfMonth(now, 0).Format(dateLayout),
			Label:     "Last 3 Months",
		}
	case "last_6_months":
		return DateRange{
			StartDate: firstOfMonth(now, -5).Format(dateLayout),
			EndDate:   lastOfMonth(now, 0).Format(dateLayout),
			Label:     "Last 6 Months",
		}
	case "current_year":
		return DateRange{
			StartDate: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			EndDate:   time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			Label:     "This Year",
		}
	case "last_year":
		return DateRange{
			StartDate: time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			EndDate:   time.Date(now.Year()-1, 12, 31, 0, 0, 0, 0, now.Location()).Format(dateLayout),
			Label:     "Last Year",
		}
	default: // current_month and anything unrecognized
		return DateRange{
			StartDate: firstOfMonth(now, 0).Format(dateLayout),
			EndDate:   lastOfMonth(now, 0).Format(dateLayout),
			Label:     "This Month",
		}
	}
}

// isValidDate reports whether s is a well-formed YYYY-MM-DD calendar date
func isValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
