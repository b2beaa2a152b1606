package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentTypeRepository interface {
	// FindByID loads the type with its resource requirements preloaded.
	FindByID(db *gorm.DB, clinicID uuid.UUID, id int) (*entity.AppointmentType, error)
	// FindQualifiedPractitioners returns the active practitioners qualified
	// for the appointment type, ordered by id for determinism.
	FindQualifiedPractitioners(db *gorm.DB, clinicID uuid.UUID, appointmentTypeID int) ([]entity.User, error)
	IsPractitionerQualified(db *gorm.DB, appointmentTypeID int, practitionerID uuid.UUID) (bool, error)
}
