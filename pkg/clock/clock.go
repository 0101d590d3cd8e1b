// Package clock provides the wall clock used to evaluate opening hours and a
// controllable replacement for tests.
package clock

import (
	"fmt"
	"time"
)

// Clock reads the current instant, optionally converted to a fixed location so that
// weekday and hour-of-day are those of the stations rather than of the host.
type Clock struct {
	loc *time.Location
}

func New() *Clock {
	return &Clock{}
}

func NewWithLocation(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

// NewInZone resolves an IANA zone name such as "Europe/Madrid".
func NewInZone(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return NewWithLocation(loc), nil
}

func (c *Clock) Now() time.Time {
	now := time.Now()
	if c.loc != nil {
		now = now.In(c.loc)
	}
	return now
}

func (c *Clock) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

type Mock struct {
	value func() time.Time
}

func NewMock(value time.Time) *Mock {
	return &Mock{
		value: func() time.Time {
			return value
		},
	}
}

// NewMockAt is a shortcut for tests that only care about the weekday and clock time:
// it returns a mock fixed at hh:mm on the first day of the week 2025-11-17 (a Monday)
// shifted to the requested weekday.
func NewMockAt(day time.Weekday, hh, mm int) *Mock {
	return NewMock(At(day, hh, mm))
}

// At returns hh:mm UTC on the given weekday of the week starting Monday 2025-11-17.
func At(day time.Weekday, hh, mm int) time.Time {
	offset := (int(day) + 6) % 7 //nolint:mnd // Monday-based offset
	return time.Date(2025, time.November, 17+offset, hh, mm, 0, 0, time.UTC)
}

func (m *Mock) Now() time.Time {
	return m.value()
}

func (m *Mock) Set(t time.Time) {
	m.value = func() time.Time {
		return t
	}
}
