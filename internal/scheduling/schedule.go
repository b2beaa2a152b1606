package scheduling

import "github.com/google/uuid"

// Interval is a half-open [Start, End) range of clinic-local minutes of day.
type Interval struct {
	Start int
	End   int
}

// BusyInterval is an occupied range plus the trailing scheduling buffer of the
// appointment type that occupies it. The buffer belongs to the preceding
// appointment: nothing may start until BlocksUntil.
type BusyInterval struct {
	Start         int
	End           int
	BufferMinutes int
}

// BlocksUntil is the first minute a following appointment may start, clamped
// to the end of day.
func (b BusyInterval) BlocksUntil() int {
	until := b.End + b.BufferMinutes
	if until > MinutesPerDay {
		return MinutesPerDay
	}
	return until
}

// DaySchedule is one practitioner's free/busy picture for a single date.
// Free intervals come from the weekly availability rows matching the date's
// weekday; busy intervals from confirmed calendar events on that date.
type DaySchedule struct {
	PractitionerID uuid.UUID
	Free           []Interval
	Busy           []BusyInterval
}

// Conflicts reports whether [start, end) collides with any busy interval,
// buffers included.
func (s DaySchedule) Conflicts(start, end int) bool {
	for _, b := range s.Busy {
		if IntervalsOverlap(start, end, b.Start, b.BlocksUntil()) {
			return true
		}
	}
	return false
}

// FitsWorkingHours reports whether [start, end) lies entirely inside one of
// the free intervals.
func (s DaySchedule) FitsWorkingHours(start, end int) bool {
	for _, f := range s.Free {
		if start >= f.Start && end <= f.End {
			return true
		}
	}
	return false
}
