package scheduling

import "time"

// BookingRestriction is the validated booking restriction policy of a clinic.
// Stored restriction strings are mapped here once, at load time, instead of
// being probed ad hoc wherever slots are filtered.
type BookingRestriction int

const (
	// RestrictionNone places no minimum-notice requirement.
	RestrictionNone BookingRestriction = iota
	// RestrictionMinimumHours drops slots starting sooner than the clinic's
	// minimum notice.
	RestrictionMinimumHours
	// RestrictionUnknown is an unrecognized stored value. It fails open so
	// un-migrated clinics keep accepting bookings.
	RestrictionUnknown
)

// defaultMinimumHours backs the legacy same-day restriction when a clinic has
// no explicit minimum configured.
const defaultMinimumHours = 24

// BookingPolicy is the clinic-wide booking window: minimum notice and maximum
// advance. Loaded once per request and passed explicitly into the filters.
type BookingPolicy struct {
	Restriction              BookingRestriction
	MinimumBookingHoursAhead int
	MaxBookingWindowDays     int // <= 0 means no cap
}

// NewBookingPolicy validates and defaults a clinic's stored booking settings.
// The deprecated "same_day_disallowed" value is migrated at read time to
// minimum-hours semantics (24h when no explicit minimum is set).
func NewBookingPolicy(restrictionType string, minimumHoursAhead, maxWindowDays int) BookingPolicy {
	p := BookingPolicy{
		MinimumBookingHoursAhead: minimumHoursAhead,
		MaxBookingWindowDays:     maxWindowDays,
	}
	switch restrictionType {
	case "", "none":
		p.Restriction = RestrictionNone
	case "minimum_hours_required":
		p.Restriction = RestrictionMinimumHours
	case "same_day_disallowed":
		p.Restriction = RestrictionMinimumHours
		if p.MinimumBookingHoursAhead <= 0 {
			p.MinimumBookingHoursAhead = defaultMinimumHours
		}
	default:
		p.Restriction = RestrictionUnknown
	}
	return p
}

// AllowsStart reports whether a slot starting at the given clinic-local
// instant satisfies the minimum-notice axis. Unknown restrictions allow all.
func (p BookingPolicy) AllowsStart(now, start time.Time) bool {
	if start.Before(now) {
		return false
	}
	if p.Restriction != RestrictionMinimumHours {
		return true
	}
	notice := time.Duration(p.MinimumBookingHoursAhead) * time.Hour
	return !start.Before(now.Add(notice))
}

// WithinWindow reports whether a date falls inside the maximum advance-booking
// window counted from today. Applied at the date level, before per-slot work.
func (p BookingPolicy) WithinWindow(today, date time.Time) bool {
	if p.MaxBookingWindowDays <= 0 {
		return true
	}
	latest := DateOnly(today).AddDate(0, 0, p.MaxBookingWindowDays)
	return !DateOnly(date).After(latest)
}

// FilterDates keeps only dates inside the maximum booking window.
func (p BookingPolicy) FilterDates(today time.Time, dates []time.Time) []time.Time {
	if p.MaxBookingWindowDays <= 0 {
		return dates
	}
	kept := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if p.WithinWindow(today, d) {
			kept = append(kept, d)
		}
	}
	return kept
}

// DateOnly truncates an instant to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartInstant combines a date and a minute-of-day into a clinic-local instant.
func StartInstant(date time.Time, minuteOfDay int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minuteOfDay/60, minuteOfDay%60, 0, 0, date.Location())
}

// SameDate reports whether two instants fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
