package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindPractitioner returns the active practitioner-role user with the
	// given id scoped to the clinic, or nil.
	FindPractitioner(db *gorm.DB, clinicID, id uuid.UUID) (*entity.User, error)
}
