package repository

import (
	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) FindByPractitionersAndWeekday(db *gorm.DB, clinicID uuid.UUID, practitionerIDs []uuid.UUID, dayOfWeek int) ([]entity.PractitionerAvailability, error) {
	if len(practitionerIDs) == 0 {
		return nil, nil
	}
	var rows []entity.PractitionerAvailability
	err := db.Where("clinic_id = ? AND practitioner_id IN ? AND day_of_week = ?", clinicID, practitionerIDs, dayOfWeek).
		Order("practitioner_id, start_time").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
