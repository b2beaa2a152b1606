package scheduling

import (
	"testing"
	"time"
)

func clinicTime(h, m int) time.Time {
	return time.Date(2025, 6, 10, h, m, 0, 0, time.UTC)
}

func TestNewBookingPolicyMapsLegacyRestriction(t *testing.T) {
	tests := []struct {
		name            string
		restrictionType string
		hours           int
		wantRestriction BookingRestriction
		wantHours       int
	}{
		{name: "none", restrictionType: "none", wantRestriction: RestrictionNone},
		{name: "empty means none", restrictionType: "", wantRestriction: RestrictionNone},
		{name: "minimum hours", restrictionType: "minimum_hours_required", hours: 2, wantRestriction: RestrictionMinimumHours, wantHours: 2},
		{name: "legacy same day maps to minimum hours", restrictionType: "same_day_disallowed", wantRestriction: RestrictionMinimumHours, wantHours: 24},
		{name: "legacy same day keeps explicit hours", restrictionType: "same_day_disallowed", hours: 6, wantRestriction: RestrictionMinimumHours, wantHours: 6},
		{name: "unknown fails open", restrictionType: "lottery", wantRestriction: RestrictionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBookingPolicy(tt.restrictionType, tt.hours, 0)
			if p.Restriction != tt.wantRestriction {
				t.Errorf("Restriction = %v, want %v", p.Restriction, tt.wantRestriction)
			}
			if tt.wantHours != 0 && p.MinimumBookingHoursAhead != tt.wantHours {
				t.Errorf("MinimumBookingHoursAhead = %d, want %d", p.MinimumBookingHoursAhead, tt.wantHours)
			}
		})
	}
}

// Clinic minimum notice 2h, clinic-local now 13:30: 09:00 and 10:00 are in
// the past, 14:00 is only 30 minutes ahead, so all three are dropped; 16:00
// passes.
func TestAllowsStartMinimumNoticeScenario(t *testing.T) {
	p := NewBookingPolicy("minimum_hours_required", 2, 0)
	now := clinicTime(13, 30)

	tests := []struct {
		start time.Time
		want  bool
	}{
		{start: clinicTime(9, 0), want: false},
		{start: clinicTime(10, 0), want: false},
		{start: clinicTime(14, 0), want: false},
		{start: clinicTime(15, 30), want: true}, // exactly 2h ahead
		{start: clinicTime(16, 0), want: true},
	}
	for _, tt := range tests {
		if got := p.AllowsStart(now, tt.start); got != tt.want {
			t.Errorf("AllowsStart(13:30, %02d:%02d) = %v, want %v", tt.start.Hour(), tt.start.Minute(), got, tt.want)
		}
	}
}

func TestAllowsStartUnknownRestrictionFailsOpen(t *testing.T) {
	p := NewBookingPolicy("not_a_policy", 99, 0)
	now := clinicTime(13, 30)
	if !p.AllowsStart(now, clinicTime(14, 0)) {
		t.Error("unknown restriction should allow future slots")
	}
	if p.AllowsStart(now, clinicTime(9, 0)) {
		t.Error("even fail-open must reject slots in the past")
	}
}

func TestFilterDatesMaxWindow(t *testing.T) {
	p := NewBookingPolicy("none", 0, 7)
	today := clinicTime(8, 0)

	var dates []time.Time
	for i := 0; i < 15; i++ {
		dates = append(dates, DateOnly(today).AddDate(0, 0, i))
	}
	kept := p.FilterDates(today, dates)
	if len(kept) != 8 { // today plus 7 days
		t.Fatalf("kept %d dates, want 8", len(kept))
	}

	// Monotonicity: once a date is excluded, every later date is excluded.
	excluded := false
	for _, d := range dates {
		within := p.WithinWindow(today, d)
		if excluded && within {
			t.Fatalf("window filter is not monotone: %v allowed after an earlier exclusion", d)
		}
		if !within {
			excluded = true
		}
	}
}

func TestFilterDatesNoCapKeepsAll(t *testing.T) {
	p := NewBookingPolicy("none", 0, 0)
	today := clinicTime(8, 0)
	dates := []time.Time{DateOnly(today), DateOnly(today).AddDate(1, 0, 0)}
	if got := p.FilterDates(today, dates); len(got) != 2 {
		t.Errorf("uncapped window kept %d dates, want 2", len(got))
	}
}

func TestStartInstant(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got := StartInstant(date, minutes(14, 30))
	want := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartInstant = %v, want %v", got, want)
	}
}
