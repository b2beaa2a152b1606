package dto

import "github.com/google/uuid"

// Request DTOs

// ResourceAvailabilityRequest probes resource capacity for a candidate
// interval. SelectedResourceIDs nil means "check global capacity, the system
// will allocate"; a non-nil list (possibly empty) means "validate exactly
// this manual selection".
type ResourceAvailabilityRequest struct {
	AppointmentTypeID   int    `json:"appointment_type_id" validate:"required"`
	Date                string `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime           string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime             string `json:"end_time" validate:"required"`   // Format: HH:MM
	SelectedResourceIDs *[]int `json:"selected_resource_ids"`
}

// Response DTOs

type SelectionInsufficientWarning struct {
	ResourceTypeID   int    `json:"resource_type_id"`
	RequiredQuantity int    `json:"required_quantity"`
	SelectedQuantity int    `json:"selected_quantity"`
}

type ConflictingAppointmentInfo struct {
	AppointmentID    uuid.UUID `json:"appointment_id"`
	PractitionerName string    `json:"practitioner_name"`
}

type ResourceConflictWarning struct {
	ResourceID             int                        `json:"resource_id"`
	ResourceName           string                     `json:"resource_name"`
	ConflictingAppointment ConflictingAppointmentInfo `json:"conflicting_appointment"`
}

type ResourceAvailabilityResponse struct {
	IsAvailable                   bool                           `json:"is_available"`
	SelectionInsufficientWarnings []SelectionInsufficientWarning `json:"selection_insufficient_warnings"`
	ResourceConflictWarnings      []ResourceConflictWarning      `json:"resource_conflict_warnings"`
}
