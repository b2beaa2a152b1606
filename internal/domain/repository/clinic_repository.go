package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Clinic, error)
}
