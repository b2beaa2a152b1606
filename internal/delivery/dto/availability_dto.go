package dto

import "github.com/google/uuid"

// Request DTOs

type AvailabilityRequest struct {
	AppointmentTypeID int        `json:"appointment_type_id" validate:"required"`
	Date              string     `json:"date" validate:"required"` // Format: YYYY-MM-DD
	PractitionerID    *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
}

// BatchAvailabilityRequest asks for several dates at once; at most 31 per
// call.
type BatchAvailabilityRequest struct {
	AppointmentTypeID int        `json:"appointment_type_id" validate:"required"`
	Dates             []string   `json:"dates" validate:"required,min=1,max=31,dive,required"` // Format: YYYY-MM-DD
	PractitionerID    *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
}

// Response DTOs

type SlotResponse struct {
	StartTime        string    `json:"start_time"` // Format: HH:MM
	EndTime          string    `json:"end_time"`   // Format: HH:MM
	PractitionerID   uuid.UUID `json:"practitioner_id"`
	PractitionerName string    `json:"practitioner_name"`
}

type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type BatchAvailabilityResponse struct {
	Days []AvailabilityResponse `json:"days"`
}
