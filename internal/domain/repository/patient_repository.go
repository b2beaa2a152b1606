package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, clinicID, userID uuid.UUID) (*entity.Patient, error)
}
