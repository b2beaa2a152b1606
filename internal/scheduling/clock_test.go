package scheduling

import "testing"

func TestRoundUpToInterval(t *testing.T) {
	tests := []struct {
		name   string
		minute int
		step   int
		want   int
	}{
		{name: "already aligned", minute: 9 * 60, step: 15, want: 9 * 60},
		{name: "rounds up within hour", minute: 9*60 + 7, step: 15, want: 9*60 + 15},
		{name: "rounds to next hour", minute: 9*60 + 50, step: 15, want: 10 * 60},
		{name: "one past alignment", minute: 9*60 + 16, step: 15, want: 9*60 + 30},
		{name: "midnight unchanged", minute: 0, step: 15, want: 0},
		{name: "clamps at end of day", minute: 23*60 + 50, step: 60, want: 23*60 + 59},
		{name: "non positive step is identity", minute: 137, step: 0, want: 137},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUpToInterval(tt.minute, tt.step); got != tt.want {
				t.Errorf("RoundUpToInterval(%d, %d) = %d, want %d", tt.minute, tt.step, got, tt.want)
			}
		})
	}
}

func TestRoundUpToIntervalIdempotent(t *testing.T) {
	for minute := 0; minute < MinutesPerDay; minute += 7 {
		once := RoundUpToInterval(minute, 15)
		twice := RoundUpToInterval(once, 15)
		if once != twice {
			t.Fatalf("rounding not idempotent at %d: first %d, second %d", minute, once, twice)
		}
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{name: "disjoint", startA: 60, endA: 120, startB: 180, endB: 240, want: false},
		{name: "touching endpoints do not overlap", startA: 60, endA: 120, startB: 120, endB: 180, want: false},
		{name: "touching reversed", startA: 120, endA: 180, startB: 60, endB: 120, want: false},
		{name: "partial overlap", startA: 60, endA: 130, startB: 120, endB: 180, want: true},
		{name: "contained", startA: 60, endA: 240, startB: 120, endB: 180, want: true},
		{name: "identical", startA: 60, endA: 120, startB: 60, endB: 120, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntervalsOverlap(tt.startA, tt.endA, tt.startB, tt.endB); got != tt.want {
				t.Errorf("IntervalsOverlap(%d,%d,%d,%d) = %v, want %v", tt.startA, tt.endA, tt.startB, tt.endB, got, tt.want)
			}
		})
	}
}

func TestParseAndFormatClockTime(t *testing.T) {
	got, err := ParseClockTime("09:45")
	if err != nil {
		t.Fatalf("ParseClockTime: %v", err)
	}
	if got != 9*60+45 {
		t.Errorf("ParseClockTime(09:45) = %d, want %d", got, 9*60+45)
	}

	withSeconds, err := ParseClockTime("14:30:00")
	if err != nil {
		t.Fatalf("ParseClockTime with seconds: %v", err)
	}
	if withSeconds != 14*60+30 {
		t.Errorf("ParseClockTime(14:30:00) = %d, want %d", withSeconds, 14*60+30)
	}

	if _, err := ParseClockTime("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}

	if s := FormatClockTime(9*60 + 5); s != "09:05" {
		t.Errorf("FormatClockTime = %q, want 09:05", s)
	}
}
