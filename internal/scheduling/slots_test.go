package scheduling

import (
	"testing"
)

func minutes(h, m int) int { return h*60 + m }

func TestGenerateSlotsBasic(t *testing.T) {
	sched := DaySchedule{
		Free: []Interval{{Start: minutes(9, 0), End: minutes(10, 0)}},
	}
	got := GenerateSlots(sched, 30, 15, 0)
	want := []int{minutes(9, 0), minutes(9, 15), minutes(9, 30)}
	assertSlots(t, got, want)
}

func TestGenerateSlotsRespectsBusyBuffer(t *testing.T) {
	// A 09:00-09:30 appointment with a 15 minute buffer blocks starts before
	// 09:45; the buffer belongs to the preceding appointment's type.
	sched := DaySchedule{
		Free: []Interval{{Start: minutes(9, 0), End: minutes(11, 0)}},
		Busy: []BusyInterval{{Start: minutes(9, 0), End: minutes(9, 30), BufferMinutes: 15}},
	}
	got := GenerateSlots(sched, 30, 15, 0)
	want := []int{minutes(9, 45), minutes(10, 0), minutes(10, 15), minutes(10, 30)}
	assertSlots(t, got, want)
}

func TestGenerateSlotsEarliestStartRoundsUp(t *testing.T) {
	// Generating for today at 09:07 must not offer 09:00.
	sched := DaySchedule{
		Free: []Interval{{Start: minutes(9, 0), End: minutes(10, 0)}},
	}
	got := GenerateSlots(sched, 30, 15, minutes(9, 7))
	want := []int{minutes(9, 15), minutes(9, 30)}
	assertSlots(t, got, want)
}

func TestGenerateSlotsDurationMustFit(t *testing.T) {
	sched := DaySchedule{
		Free: []Interval{{Start: minutes(9, 0), End: minutes(9, 20)}},
	}
	if got := GenerateSlots(sched, 30, 15, 0); len(got) != 0 {
		t.Errorf("expected no slots in a 20 minute window for 30 minute duration, got %v", got)
	}
}

func TestGenerateSlotsTouchingBusyEndIsAllowed(t *testing.T) {
	// Half-open semantics: a candidate may start exactly when a zero-buffer
	// busy interval ends.
	sched := DaySchedule{
		Free: []Interval{{Start: minutes(9, 0), End: minutes(10, 30)}},
		Busy: []BusyInterval{{Start: minutes(9, 0), End: minutes(9, 30)}},
	}
	got := GenerateSlots(sched, 30, 15, 0)
	want := []int{minutes(9, 30), minutes(9, 45), minutes(10, 0)}
	assertSlots(t, got, want)
}

func TestGenerateSlotsMultipleFreeIntervals(t *testing.T) {
	sched := DaySchedule{
		Free: []Interval{
			{Start: minutes(9, 0), End: minutes(9, 45)},
			{Start: minutes(14, 0), End: minutes(14, 45)},
		},
	}
	got := GenerateSlots(sched, 45, 15, 0)
	want := []int{minutes(9, 0), minutes(14, 0)}
	assertSlots(t, got, want)
}

// Every emitted slot, independently re-checked against the same inputs, must
// report no conflict and fit the working hours.
func TestGenerateSlotsSoundness(t *testing.T) {
	sched := DaySchedule{
		Free: []Interval{
			{Start: minutes(8, 30), End: minutes(12, 0)},
			{Start: minutes(13, 0), End: minutes(18, 0)},
		},
		Busy: []BusyInterval{
			{Start: minutes(9, 0), End: minutes(9, 40), BufferMinutes: 10},
			{Start: minutes(10, 15), End: minutes(11, 0)},
			{Start: minutes(15, 0), End: minutes(16, 30), BufferMinutes: 30},
		},
	}
	const duration = 25
	slots := GenerateSlots(sched, duration, 15, minutes(8, 0))
	if len(slots) == 0 {
		t.Fatal("expected some slots")
	}
	for _, s := range slots {
		if sched.Conflicts(s, s+duration) {
			t.Errorf("slot %s conflicts with busy intervals", FormatClockTime(s))
		}
		if !sched.FitsWorkingHours(s, s+duration) {
			t.Errorf("slot %s falls outside working hours", FormatClockTime(s))
		}
		if s%15 != 0 {
			t.Errorf("slot %s is not aligned to the generation granularity", FormatClockTime(s))
		}
	}
}

func assertSlots(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d slots %v, want %d %v", len(got), formatAll(got), len(want), formatAll(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot[%d] = %s, want %s", i, FormatClockTime(got[i]), FormatClockTime(want[i]))
		}
	}
}

func formatAll(slots []int) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = FormatClockTime(s)
	}
	return out
}
