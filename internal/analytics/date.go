// Package analytics is the derivation engine: pure functions that fold a
// game library into buckets, streaks, trends and classifications. Every
// function here is side-effect free and takes "now" explicitly, so results
// are reproducible in tests regardless of host clock or timezone.
package analytics

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time-of-day and no timezone.
// The dashboard cares about "which day did you play", never about wall-clock
// instants, and parsing "YYYY-MM-DD" through time.Time picked up UTC-midnight
// shifts in the past. All calendar math in this package goes through Date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// ParseDate parses a strict "YYYY-MM-DD" string into a civil date.
// The result is identical in every timezone; that is the whole point.
func ParseDate(s string) (Date, error) {
	// time.Parse tolerates missing zero padding; the wire contract doesn't.
	if len(s) != len(dateLayout) {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time materializes the date as midnight in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string { return d.utc().Format(dateLayout) }

// MarshalJSON renders the date as a plain "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts the same plain string form.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.utc().Before(o.utc()) }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.utc().After(o.utc()) }

// AddDays returns the date n calendar days later (earlier for negative n).
// time.Date normalizes overflow, so month and year boundaries are free.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// AddMonths returns the date n calendar months later. Day-of-month overflow
// normalizes forward (Jan 31 + 1 month = Mar 2/3), which is acceptable for
// forecast horizons.
func (d Date) AddMonths(n int) Date {
	return DateOf(time.Date(d.Year, d.Month+time.Month(n), d.Day, 0, 0, 0, 0, time.UTC))
}

// DaysSince returns the number of calendar days from o to d (negative when
// d precedes o).
func (d Date) DaysSince(o Date) int {
	return int(d.utc().Sub(o.utc()) / (24 * time.Hour))
}

// Weekday of the civil date.
func (d Date) Weekday() time.Weekday { return d.utc().Weekday() }
