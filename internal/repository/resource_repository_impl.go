package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resourceRepository struct{}

func NewResourceRepository() domainRepo.ResourceRepository {
	return &resourceRepository{}
}

func (r *resourceRepository) FindActiveByType(db *gorm.DB, clinicID uuid.UUID, resourceTypeID int) ([]entity.Resource, error) {
	var resources []entity.Resource
	err := db.Where("clinic_id = ? AND resource_type_id = ? AND is_deleted = ?", clinicID, resourceTypeID, false).
		Order("id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) FindByIDs(db *gorm.DB, clinicID uuid.UUID, ids []int) ([]entity.Resource, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var resources []entity.Resource
	err := db.Where("clinic_id = ? AND id IN ? AND is_deleted = ?", clinicID, ids, false).
		Order("id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

// FindConfirmedAllocations joins allocations through appointments and their
// calendar events so only intervals held by confirmed appointments count.
func (r *resourceRepository) FindConfirmedAllocations(db *gorm.DB, clinicID uuid.UUID, resourceTypeID int, date time.Time, excludeAppointmentID *uuid.UUID) ([]entity.ResourceAllocationInterval, error) {
	query := db.Table("appointment_resource_allocations ara").
		Select(`ara.resource_id,
			res.resource_type_id,
			res.name AS resource_name,
			a.id AS appointment_id,
			u.full_name AS practitioner_name,
			ce.start_time,
			ce.end_time`).
		Joins("JOIN resources res ON res.id = ara.resource_id").
		Joins("JOIN appointments a ON a.id = ara.appointment_id").
		Joins("JOIN calendar_events ce ON ce.id = a.calendar_event_id").
		Joins("JOIN users u ON u.id = a.practitioner_id").
		Where("a.clinic_id = ? AND res.resource_type_id = ? AND a.status = ? AND ce.date = ?",
			clinicID, resourceTypeID, string(entity.AppointmentStatusConfirmed), date)

	if excludeAppointmentID != nil {
		query = query.Where("a.id <> ?", *excludeAppointmentID)
	}

	var rows []entity.ResourceAllocationInterval
	if err := query.Order("ara.resource_id, ce.start_time").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *resourceRepository) CreateAllocations(db *gorm.DB, allocations []entity.AppointmentResourceAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return db.Create(&allocations).Error
}

func (r *resourceRepository) DeleteAllocationsByAppointment(db *gorm.DB, appointmentID uuid.UUID) error {
	return db.Where("appointment_id = ?", appointmentID).
		Delete(&entity.AppointmentResourceAllocation{}).Error
}
