package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, clinicID uuid.UUID, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Practitioner").
		Preload("AppointmentType").
		Preload("CalendarEvent").
		Preload("Patient").
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

// UpdateStatus flips the status only when it differs, so a double cancel is
// detectable by the affected-rows count.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusConfirmed).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountConfirmedByPractitionersAndDate(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, date time.Time) ([]entity.PractitionerLoad, error) {
	if len(practitionerIDs) == 0 {
		return nil, nil
	}
	var loads []entity.PractitionerLoad
	err := db.Table("appointments a").
		Select("a.practitioner_id, COUNT(*) AS appointments").
		Joins("JOIN calendar_events ce ON ce.id = a.calendar_event_id").
		Where("a.clinic_id = ? AND a.practitioner_id IN ? AND a.status = ? AND ce.date = ?",
			clinicID, practitionerIDs, string(entity.AppointmentStatusConfirmed), date).
		Group("a.practitioner_id").
		Scan(&loads).Error
	if err != nil {
		return nil, err
	}
	return loads, nil
}
