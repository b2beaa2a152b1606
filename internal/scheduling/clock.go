// Package scheduling holds the pure appointment-scheduling core: clock and
// interval arithmetic, free/busy day schedules, candidate slot generation and
// the clinic booking-window policy. Everything here works on clinic-local
// minute-of-day integers and has no database or framework dependencies.
package scheduling

import (
	"fmt"
	"time"
)

const (
	// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
	MinutesPerDay = 24 * 60

	// endOfDayMinute is 23:59. Rounding never wraps past midnight; it clamps
	// here instead.
	endOfDayMinute = MinutesPerDay - 1
)

// Clock supplies clinic-local time. Usecases take it as a dependency so the
// booking-window tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewClock returns a Clock reporting wall time in the given location.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// ParseClockTime parses an "HH:MM" string into a minute-of-day value.
func ParseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		// Postgres time columns scan back as "HH:MM:SS".
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClockTime renders a minute-of-day value as "HH:MM".
func FormatClockTime(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// MinuteOfDay extracts the clinic-local minute-of-day from an instant.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// RoundUpToInterval rounds a minute-of-day up to the next multiple of step.
// Already-aligned values are unchanged. Rounding never crosses midnight: a
// result past the end of day clamps to 23:59.
func RoundUpToInterval(minuteOfDay, step int) int {
	if step <= 0 {
		return minuteOfDay
	}
	rem := minuteOfDay % step
	if rem == 0 {
		return minuteOfDay
	}
	rounded := minuteOfDay + step - rem
	if rounded > endOfDayMinute {
		return endOfDayMinute
	}
	return rounded
}

// IntervalsOverlap reports whether two half-open intervals [startA, endA) and
// [startB, endB) intersect. Touching endpoints do not count as overlap.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
