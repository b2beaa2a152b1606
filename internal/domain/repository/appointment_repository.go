package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// FindByID loads an appointment with practitioner, type and calendar
	// event preloaded, scoped to the clinic.
	FindByID(db *gorm.DB, clinicID uuid.UUID, id uuid.UUID) (*entity.Appointment, error)
	Save(db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	// CountConfirmedByPractitionersAndDate returns the confirmed-appointment
	// load per practitioner for one date in a single grouped query; input to
	// auto-assignment load balancing.
	CountConfirmedByPractitionersAndDate(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, date time.Time) ([]entity.PractitionerLoad, error)
}
