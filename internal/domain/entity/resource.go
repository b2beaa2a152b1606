package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType is a clinic-scoped category of shared physical resource,
// e.g. "treatment room" or "ultrasound unit".
type ResourceType struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Resources []Resource `gorm:"foreignKey:ResourceTypeID" json:"resources,omitempty"`
}

func (ResourceType) TableName() string {
	return "resource_types"
}

// Resource is one physical instance of a ResourceType. Soft-deleted units are
// excluded from capacity counts but keep their allocation history.
type Resource struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID       uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ResourceTypeID int       `gorm:"not null;index" json:"resource_type_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	IsDeleted      bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	ResourceType ResourceType `gorm:"foreignKey:ResourceTypeID" json:"resource_type,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}

// AppointmentResourceAllocation commits one physical unit to one appointment.
// Quantity > 1 requirements produce multiple rows. On reschedule the rows are
// deleted and recreated, never mutated in place.
type AppointmentResourceAllocation struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ResourceID    int       `gorm:"not null;index" json:"resource_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

func (AppointmentResourceAllocation) TableName() string {
	return "appointment_resource_allocations"
}
