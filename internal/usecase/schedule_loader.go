package usecase

import (
	"time"

	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// scheduleLoader assembles the free/busy picture for one or more
// practitioners on a single date: free intervals from the weekly availability
// rows matching the date's weekday, busy intervals from confirmed calendar
// events. Both sides are batch-fetched so checking N auto-assign candidates
// costs two queries, not 2N.
type scheduleLoader struct {
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	calendarRepo     repository.CalendarEventRepository
}

func newScheduleLoader(log *logrus.Logger, availabilityRepo repository.AvailabilityRepository, calendarRepo repository.CalendarEventRepository) *scheduleLoader {
	return &scheduleLoader{
		log:              log,
		availabilityRepo: availabilityRepo,
		calendarRepo:     calendarRepo,
	}
}

// LoadDaySchedules returns a schedule per requested practitioner id.
// Practitioners without availability rows for the weekday get an empty
// schedule (no free intervals). excludeEventID drops the calendar event
// backing an appointment that is being edited, so it does not conflict with
// itself.
func (l *scheduleLoader) LoadDaySchedules(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, date time.Time, excludeEventID *int64) (map[uuid.UUID]*scheduling.DaySchedule, error) {
	schedules := make(map[uuid.UUID]*scheduling.DaySchedule, len(practitionerIDs))
	for _, id := range practitionerIDs {
		schedules[id] = &scheduling.DaySchedule{PractitionerID: id}
	}
	if len(practitionerIDs) == 0 {
		return schedules, nil
	}

	weekday := int(date.Weekday())

	availabilities, err := l.availabilityRepo.FindByPractitionersAndWeekday(db, clinicID, practitionerIDs, weekday)
	if err != nil {
		l.log.Warnf("Failed to load availability rows: %+v", err)
		return nil, err
	}
	for _, row := range availabilities {
		sched, ok := schedules[row.PractitionerID]
		if !ok {
			continue
		}
		start, err := scheduling.ParseClockTime(row.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := scheduling.ParseClockTime(row.EndTime)
		if err != nil {
			return nil, err
		}
		sched.Free = append(sched.Free, scheduling.Interval{Start: start, End: end})
	}

	busyEvents, err := l.calendarRepo.FindBusyByPractitionersAndDate(db, clinicID, practitionerIDs, date, excludeEventID)
	if err != nil {
		l.log.Warnf("Failed to load busy calendar events: %+v", err)
		return nil, err
	}
	for _, ev := range busyEvents {
		sched, ok := schedules[ev.PractitionerID]
		if !ok {
			continue
		}
		start, err := scheduling.ParseClockTime(ev.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := scheduling.ParseClockTime(ev.EndTime)
		if err != nil {
			return nil, err
		}
		sched.Busy = append(sched.Busy, scheduling.BusyInterval{
			Start:         start,
			End:           end,
			BufferMinutes: ev.BufferMinutes,
		})
	}

	return schedules, nil
}
