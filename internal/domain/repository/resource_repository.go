package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	// FindActiveByType returns the non-deleted resources of one type, ordered
	// by id.
	FindActiveByType(db *gorm.DB, clinicID uuid.UUID, resourceTypeID int) ([]entity.Resource, error)
	FindByIDs(db *gorm.DB, clinicID uuid.UUID, ids []int) ([]entity.Resource, error)
	// FindConfirmedAllocations returns every committed resource occupation on
	// a date for the given resource type, owned by a confirmed appointment.
	// excludeAppointmentID skips the appointment being edited.
	FindConfirmedAllocations(db *gorm.DB, clinicID uuid.UUID, resourceTypeID int, date time.Time, excludeAppointmentID *uuid.UUID) ([]entity.ResourceAllocationInterval, error)
	CreateAllocations(db *gorm.DB, allocations []entity.AppointmentResourceAllocation) error
	DeleteAllocationsByAppointment(db *gorm.DB, appointmentID uuid.UUID) error
}
