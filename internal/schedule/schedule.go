// Package schedule evaluates the weekly opening hours published for Spanish fuel stations,
// e.g. "L-V: 07:00-22:00; S: 08:00-14:00" or "L-D: 24H".
package schedule

import (
	"time"
)

// Status is the outcome of an evaluation. Unknown means there was no schedule to evaluate,
// which is different from Closed.
type Status int8

const (
	Unknown Status = iota
	Closed
	Open
)

type Clock interface {
	Now() time.Time
}

// Evaluator binds IsOpenNow to a clock.
type Evaluator struct {
	clock Clock
}

func NewEvaluator(clock Clock) *Evaluator {
	return &Evaluator{clock: clock}
}

func (e *Evaluator) IsOpenNow(text string) Status {
	return IsOpenNow(text, e.clock.Now())
}

// IsOpenNow reports whether a station with the given schedule text is open at now.
// Weekday and clock time are taken from now as is, so now must already be in the
// stations' local time.
func IsOpenNow(text string, now time.Time) Status {
	if text == "" {
		return Unknown
	}
	return Parse(text).StatusAt(now)
}

// StatusAt evaluates a parsed schedule. The first block covering both the weekday and the
// minute of now wins.
func (s Schedule) StatusAt(now time.Time) Status {
	if s.AlwaysOpen {
		return Open
	}

	today := now.Weekday()
	for _, b := range s.Blocks {
		if !b.CoversDay(today) {
			continue
		}
		if b.CoversTime(now.Hour(), now.Minute()) {
			return Open
		}
	}
	return Closed
}

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case Open:
		return []byte("true"), nil
	case Closed:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}
