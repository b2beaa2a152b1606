package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentType is a bookable service definition: how long it takes, how
// much idle time the practitioner needs afterwards, who is qualified to
// deliver it and which physical resources it consumes.
type AppointmentType struct {
	ID                      int             `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name                    string          `gorm:"type:varchar(255);not null" json:"name"`
	DurationMinutes         int             `gorm:"not null" json:"duration_minutes"`
	SchedulingBufferMinutes int             `gorm:"not null;default:0" json:"scheduling_buffer_minutes"`
	Price                   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	CreatedAt               time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic                 Clinic                           `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	QualifiedPractitioners []User                           `gorm:"many2many:appointment_type_practitioners" json:"qualified_practitioners,omitempty"`
	ResourceRequirements   []AppointmentResourceRequirement `gorm:"foreignKey:AppointmentTypeID" json:"resource_requirements,omitempty"`
}

func (AppointmentType) TableName() string {
	return "appointment_types"
}

// AppointmentResourceRequirement says how many units of a resource type one
// appointment of this type consumes for its whole interval.
type AppointmentResourceRequirement struct {
	ID                int `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentTypeID int `gorm:"not null;index" json:"appointment_type_id"`
	ResourceTypeID    int `gorm:"not null;index" json:"resource_type_id"`
	Quantity          int `gorm:"not null;default:1" json:"quantity"`

	// Relationships
	ResourceType ResourceType `gorm:"foreignKey:ResourceTypeID" json:"resource_type,omitempty"`
}

func (AppointmentResourceRequirement) TableName() string {
	return "appointment_resource_requirements"
}
