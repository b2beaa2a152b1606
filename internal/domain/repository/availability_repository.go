package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	// FindByPractitionersAndWeekday batch-fetches the weekly availability
	// rows for all given practitioners on one weekday in a single query.
	FindByPractitionersAndWeekday(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, dayOfWeek int) ([]entity.PractitionerAvailability, error)
}
