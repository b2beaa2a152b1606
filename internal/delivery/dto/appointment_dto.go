package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID         uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentTypeID int        `json:"appointment_type_id" validate:"required"`
	Date              string     `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime         string     `json:"start_time" validate:"required"` // Format: HH:MM
	PractitionerID    *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
	// SelectedResourceIDs distinguishes the two resource modes: nil lets the
	// system allocate; a non-nil list (possibly empty) is a staff selection
	// validated as-is.
	SelectedResourceIDs *[]int `json:"selected_resource_ids"`
	// IdempotencyKey is populated by the handler from the Idempotency-Key
	// header, never from the body.
	IdempotencyKey string `json:"-"`
}

type EditAppointmentRequest struct {
	Date                *string    `json:"date" validate:"omitempty"`       // Format: YYYY-MM-DD
	StartTime           *string    `json:"start_time" validate:"omitempty"` // Format: HH:MM
	PractitionerID      *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
	SelectedResourceIDs *[]int     `json:"selected_resource_ids"`
}

type ReassignAppointmentRequest struct {
	PractitionerID uuid.UUID `json:"practitioner_id" validate:"required"`
}

type EditConflictCheckRequest struct {
	Date           string     `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime      string     `json:"start_time" validate:"required"` // Format: HH:MM
	PractitionerID *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                     uuid.UUID  `json:"id"`
	PatientID              uuid.UUID  `json:"patient_id"`
	PractitionerID         uuid.UUID  `json:"practitioner_id"`
	PractitionerName       string     `json:"practitioner_name"`
	AppointmentTypeID      int        `json:"appointment_type_id"`
	Date                   string     `json:"date"`       // Format: YYYY-MM-DD
	StartTime              string     `json:"start_time"` // Format: HH:MM
	EndTime                string     `json:"end_time"`   // Format: HH:MM
	Status                 string     `json:"status"`
	IsAutoAssigned         bool       `json:"is_auto_assigned"`
	OriginallyAutoAssigned bool       `json:"originally_auto_assigned"`
	ReassignedAt           *time.Time `json:"reassigned_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

type ConflictingAppointment struct {
	AppointmentID  uuid.UUID `json:"appointment_id"`
	PractitionerID uuid.UUID `json:"practitioner_id"`
	StartTime      string    `json:"start_time"` // Format: HH:MM
	EndTime        string    `json:"end_time"`   // Format: HH:MM
}

type EditConflictsResponse struct {
	HasConflicts bool                     `json:"has_conflicts"`
	Conflicts    []ConflictingAppointment `json:"conflicts"`
}
