// Package timedate provides the wall-clock collaborator for emulated
// real-time-clock chips. It deals in broken-down calendar time with the
// field conventions of struct tm, so chip code can manipulate single
// fields without caring about calendar normalization.
package timedate

import "time"

// Breakdown is a calendar-time breakdown.
// Field ranges follow struct tm: Mon is zero based and Year counts
// from 1900. Out-of-range values are normalized by Source
// implementations the way mktime would.
type Breakdown struct {
	Sec  int // Seconds, 0-59.
	Min  int // Minutes, 0-59.
	Hour int // Hours, 0-23.
	Wday int // Day of the week, 0-6, Sunday = 0.
	Mday int // Day of the month, 1-31.
	Mon  int // Month, 0-11.
	Year int // Years since 1900.
}

// Source yields the current time and measures distances to it.
type Source interface {
	// Now returns the wall clock shifted by the given number of seconds.
	Now(offset int64) Breakdown

	// Diff returns the signed number of seconds between the given
	// breakdown and the current wall clock.
	Diff(b Breakdown) int64
}

// System is a Source backed by the host clock, read in UTC.
type System struct {
	// Clock overrides the wall clock reading. Defaults to time.Now.
	Clock func() time.Time
}

var _ Source = System{}

func (s System) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s System) Now(offset int64) Breakdown {
	return FromTime(s.now().Add(time.Duration(offset) * time.Second))
}

func (s System) Diff(b Breakdown) int64 {
	return int64(b.Time().Sub(s.now()) / time.Second)
}

// FromTime converts t to a breakdown in UTC.
func FromTime(t time.Time) Breakdown {
	t = t.UTC()
	return Breakdown{
		Sec:  t.Second(),
		Min:  t.Minute(),
		Hour: t.Hour(),
		Wday: int(t.Weekday()),
		Mday: t.Day(),
		Mon:  int(t.Month()) - 1,
		Year: t.Year() - 1900,
	}
}

// Time converts the breakdown back to an absolute instant.
// Out-of-range fields are normalized; Wday is ignored, as it is
// derived from the date.
func (b Breakdown) Time() time.Time {
	return time.Date(b.Year+1900, time.Month(b.Mon+1), b.Mday,
		b.Hour, b.Min, b.Sec, 0, time.UTC)
}
