// Package calendar implements business-day arithmetic over calendar dates.
// Saturdays and Sundays are never business days. No holiday calendar is
// modeled.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the storage and input format for calendar dates.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Format renders a calendar day as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays steps forward one calendar day at a time until n weekdays
// have been counted. n = 0 returns the date unchanged. Negative n delegates
// to SubtractBusinessDays.
func AddBusinessDays(date time.Time, n int) time.Time {
	if n < 0 {
		return SubtractBusinessDays(date, -n)
	}
	d := Day(date)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if !IsWeekend(d) {
			counted++
		}
	}
	return d
}

// SubtractBusinessDays is the mirror of AddBusinessDays, stepping backward.
func SubtractBusinessDays(date time.Time, n int) time.Time {
	if n < 0 {
		return AddBusinessDays(date, -n)
	}
	d := Day(date)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, -1)
		if !IsWeekend(d) {
			counted++
		}
	}
	return d
}

// NextBusinessDay returns date itself when it is a weekday, else the
// following Monday.
func NextBusinessDay(date time.Time) time.Time {
	d := Day(date)
	for IsWeekend(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// BusinessDaysBetween counts weekdays in (from, to], negated when to precedes
// from. AddBusinessDays(from, BusinessDaysBetween(from, to)) lands on to
// whenever both dates are weekdays.
func BusinessDaysBetween(from, to time.Time) int {
	a, b := Day(from), Day(to)
	if b.Before(a) {
		return -BusinessDaysBetween(b, a)
	}
	n := 0
	for d := a; d.Before(b); {
		d = d.AddDate(0, 0, 1)
		if !IsWeekend(d) {
			n++
		}
	}
	return n
}

// CalendarDaysBetween returns the signed number of calendar days from a to b.
func CalendarDaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddCalendarDays shifts a date by n wall-clock days.
func AddCalendarDays(date time.Time, n int) time.Time {
	return Day(date).AddDate(0, 0, n)
}

// MaxDate returns the later of two dates.
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
