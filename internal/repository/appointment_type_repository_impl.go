package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentTypeRepository struct{}

func NewAppointmentTypeRepository() domainRepo.AppointmentTypeRepository {
	return &appointmentTypeRepository{}
}

func (r *appointmentTypeRepository) FindByID(db *gorm.DB, clinicID uuid.UUID, id int) (*entity.AppointmentType, error) {
	var appointmentType entity.AppointmentType
	err := db.Preload("ResourceRequirements").
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&appointmentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointmentType, nil
}

func (r *appointmentTypeRepository) FindQualifiedPractitioners(db *gorm.DB, clinicID uuid.UUID, appointmentTypeID int) ([]entity.User, error) {
	var practitioners []entity.User
	err := db.
		Joins("JOIN appointment_type_practitioners atp ON atp.user_id = users.id").
		Where("atp.appointment_type_id = ?", appointmentTypeID).
		Where("users.clinic_id = ? AND users.role_id = ? AND users.is_active = ?", clinicID, entity.RoleIDPractitioner, true).
		Order("users.id ASC").
		Find(&practitioners).Error
	if err != nil {
		return nil, err
	}
	return practitioners, nil
}

func (r *appointmentTypeRepository) IsPractitionerQualified(db *gorm.DB, appointmentTypeID int, practitionerID uuid.UUID) (bool, error) {
	var count int64
	err := db.Table("appointment_type_practitioners").
		Where("appointment_type_id = ? AND user_id = ?", appointmentTypeID, practitionerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
