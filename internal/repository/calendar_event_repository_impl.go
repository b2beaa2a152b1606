package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type calendarEventRepository struct{}

func NewCalendarEventRepository() domainRepo.CalendarEventRepository {
	return &calendarEventRepository{}
}

func (r *calendarEventRepository) Create(db *gorm.DB, event *entity.CalendarEvent) error {
	return db.Create(event).Error
}

func (r *calendarEventRepository) FindByID(db *gorm.DB, id int64) (*entity.CalendarEvent, error) {
	var event entity.CalendarEvent
	err := db.Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *calendarEventRepository) UpdateTimes(db *gorm.DB, id int64, date time.Time, startTime, endTime string) error {
	return db.Model(&entity.CalendarEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"date":       date,
			"start_time": startTime,
			"end_time":   endTime,
		}).Error
}

func (r *calendarEventRepository) UpdatePractitioner(db *gorm.DB, id int64, practitionerID uuid.UUID) error {
	return db.Model(&entity.CalendarEvent{}).
		Where("id = ?", id).
		Update("practitioner_id", practitionerID).Error
}

func (r *calendarEventRepository) MarkCanceled(db *gorm.DB, id int64) error {
	return db.Model(&entity.CalendarEvent{}).
		Where("id = ?", id).
		Update("is_canceled", true).Error
}

// FindBusyByPractitionersAndDate returns manual blocks and confirmed
// appointments for all requested practitioners in one query. Blocks carry a
// zero buffer; appointments carry their type's scheduling buffer.
func (r *calendarEventRepository) FindBusyByPractitionersAndDate(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, date time.Time, excludeEventID *int64) ([]entity.BusyEvent, error) {
	if len(practitionerIDs) == 0 {
		return nil, nil
	}

	query := db.Table("calendar_events ce").
		Select(`ce.id AS event_id,
			ce.practitioner_id,
			ce.start_time,
			ce.end_time,
			COALESCE(at.scheduling_buffer_minutes, 0) AS buffer_minutes,
			a.id AS appointment_id`).
		Joins("LEFT JOIN appointments a ON a.calendar_event_id = ce.id").
		Joins("LEFT JOIN appointment_types at ON at.id = a.appointment_type_id").
		Where("ce.clinic_id = ? AND ce.practitioner_id IN ? AND ce.date = ? AND ce.is_canceled = false", clinicID, practitionerIDs, date).
		Where("a.id IS NULL OR a.status = ?", string(entity.AppointmentStatusConfirmed))

	if excludeEventID != nil {
		query = query.Where("ce.id <> ?", *excludeEventID)
	}

	var rows []entity.BusyEvent
	if err := query.Order("ce.practitioner_id, ce.start_time").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
