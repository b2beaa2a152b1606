package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed         AppointmentStatus = "confirmed"
	AppointmentStatusCanceledByPatient AppointmentStatus = "canceled_by_patient"
	AppointmentStatusCanceledByClinic  AppointmentStatus = "canceled_by_clinic"
)

// Appointment is the booking domain object. Cancellation only flips the
// status; rows are never deleted so the audit trail stays intact.
//
// OriginallyAutoAssigned is sticky: once the system has chosen the
// practitioner it stays true forever, even after a manual reassignment, so
// reporting can tell "never auto" from "was auto, later fixed manually".
type Appointment struct {
	ID                     uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID               uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	AppointmentTypeID      int               `gorm:"not null;index" json:"appointment_type_id"`
	CalendarEventID        int64             `gorm:"not null;uniqueIndex" json:"calendar_event_id"`
	Status                 AppointmentStatus `gorm:"type:appointment_status;not null;default:'confirmed';index" json:"status"`
	IsAutoAssigned         bool              `gorm:"not null;default:false" json:"is_auto_assigned"`
	OriginallyAutoAssigned bool              `gorm:"not null;default:false" json:"originally_auto_assigned"`
	ReassignedByUserID     *uuid.UUID        `gorm:"type:uuid" json:"reassigned_by_user_id,omitempty"`
	ReassignedAt           *time.Time        `json:"reassigned_at,omitempty"`
	CreatedAt              time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient         Patient                         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Practitioner    User                            `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	AppointmentType AppointmentType                 `gorm:"foreignKey:AppointmentTypeID" json:"appointment_type,omitempty"`
	CalendarEvent   CalendarEvent                   `gorm:"foreignKey:CalendarEventID" json:"calendar_event,omitempty"`
	Allocations     []AppointmentResourceAllocation `gorm:"foreignKey:AppointmentID" json:"allocations,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsConfirmed checks if the appointment still occupies its slot
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCanceled checks if the appointment was canceled by either side
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceledByPatient || a.Status == AppointmentStatusCanceledByClinic
}

// MarkReassigned records a manual practitioner change. IsAutoAssigned drops
// to false; OriginallyAutoAssigned is never reset.
func (a *Appointment) MarkReassigned(byUserID uuid.UUID, at time.Time) {
	a.IsAutoAssigned = false
	a.ReassignedByUserID = &byUserID
	a.ReassignedAt = &at
}
