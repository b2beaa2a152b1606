package scheduling

// DefaultGranularityMinutes is the step between generated candidate starts.
const DefaultGranularityMinutes = 15

// GenerateSlots turns a day schedule into candidate start minutes for an
// appointment of the given duration.
//
// For each free interval [s, e) the first candidate is
// RoundUpToInterval(max(s, earliestStart), granularity); candidates then step
// by granularity while candidate+duration still fits inside the interval. A
// candidate survives only if it does not collide with any busy interval
// expanded at its trailing edge by that interval's own buffer.
//
// earliestStart prunes the past when generating for today; pass 0 for future
// dates. The result is bounded by interval length over granularity, never
// infinite.
func GenerateSlots(sched DaySchedule, durationMinutes, granularityMinutes, earliestStart int) []int {
	if durationMinutes <= 0 {
		return nil
	}
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultGranularityMinutes
	}

	var slots []int
	for _, free := range sched.Free {
		start := free.Start
		if earliestStart > start {
			start = earliestStart
		}
		candidate := RoundUpToInterval(start, granularityMinutes)
		for candidate+durationMinutes <= free.End {
			if !sched.Conflicts(candidate, candidate+durationMinutes) {
				slots = append(slots, candidate)
			}
			candidate += granularityMinutes
		}
	}
	return slots
}
