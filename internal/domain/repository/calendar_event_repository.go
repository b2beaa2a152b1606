package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarEventRepository interface {
	Create(db *gorm.DB, event *entity.CalendarEvent) error
	FindByID(db *gorm.DB, id int64) (*entity.CalendarEvent, error)
	UpdateTimes(db *gorm.DB, id int64, date time.Time, startTime, endTime string) error
	UpdatePractitioner(db *gorm.DB, id int64, practitionerID uuid.UUID) error
	// MarkCanceled releases the event's slot so the overlap constraint stops
	// guarding it.
	MarkCanceled(db *gorm.DB, id int64) error
	// FindBusyByPractitionersAndDate batch-fetches the occupied intervals for
	// all given practitioners on one date: manual blocks plus confirmed
	// appointments joined with their type's scheduling buffer. One query for
	// any number of practitioners. excludeEventID skips the event backing an
	// appointment that is being edited.
	FindBusyByPractitionersAndDate(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, date time.Time, excludeEventID *int64) ([]entity.BusyEvent, error)
}
