package entity

import "github.com/google/uuid"

// Domain-level projection rows used by the scheduling queries. Kept here so
// the repository layer does not couple to delivery DTOs.

// BusyEvent is one occupied interval on a practitioner's day: a confirmed
// appointment (with its type's trailing buffer) or a manual block.
type BusyEvent struct {
	EventID        int64
	PractitionerID uuid.UUID
	StartTime      string // Format: HH:MM
	EndTime        string // Format: HH:MM
	BufferMinutes  int
	AppointmentID  *uuid.UUID // nil for manual blocks
}

// ResourceAllocationInterval is one committed resource occupation on a date,
// owned by a confirmed appointment.
type ResourceAllocationInterval struct {
	ResourceID       int
	ResourceTypeID   int
	ResourceName     string
	AppointmentID    uuid.UUID
	PractitionerName string
	StartTime        string // Format: HH:MM
	EndTime          string // Format: HH:MM
}

// PractitionerLoad is the number of confirmed appointments a practitioner
// already has on a date; input to auto-assignment load balancing.
type PractitionerLoad struct {
	PractitionerID uuid.UUID
	Appointments   int
}
