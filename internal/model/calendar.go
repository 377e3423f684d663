package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayouts are the accepted date inputs. A month alone means its first
// day.
var DateLayouts = []string{"2006-01-02", "2006-01", "2006/01/02", "2006/01"}

// ParseDate reads a date in one of DateLayouts as local midnight.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn reads a date in one of DateLayouts as midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("is required")
	}
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM or YYYY-MM-DD", s)
}

// FormatDate renders t for form input, or "" when unset.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// DayIn returns midnight of t's calendar day in loc. Dates are calendar
// days without a zone, so they are compared in the location of "now".
func DayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddMonths moves t by n calendar months, clamping the day to the last day
// of the target month (Jan 31 + 1 month is Feb 28 or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween counts the complete calendar months from the start date to
// end. The start date is taken as a calendar day in end's location. It is
// negative when end precedes start.
func MonthsBetween(start, end time.Time) int {
	start = DayIn(start, end.Location())
	if end.Before(start) {
		return -wholeMonths(end, start)
	}
	return wholeMonths(start, end)
}

func wholeMonths(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if AddMonths(from, months).After(to) {
		months--
	}
	return months
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
