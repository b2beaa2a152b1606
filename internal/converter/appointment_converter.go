package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity (with practitioner and
// calendar event preloaded) to an AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                     appointment.ID,
		PatientID:              appointment.PatientID,
		PractitionerID:         appointment.PractitionerID,
		PractitionerName:       appointment.Practitioner.FullName,
		AppointmentTypeID:      appointment.AppointmentTypeID,
		Date:                   appointment.CalendarEvent.Date.Format("2006-01-02"),
		StartTime:              appointment.CalendarEvent.StartTime,
		EndTime:                appointment.CalendarEvent.EndTime,
		Status:                 string(appointment.Status),
		IsAutoAssigned:         appointment.IsAutoAssigned,
		OriginallyAutoAssigned: appointment.OriginallyAutoAssigned,
		ReassignedAt:           appointment.ReassignedAt,
		CreatedAt:              appointment.CreatedAt,
	}
}
