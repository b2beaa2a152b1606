package service

import (
	"context"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// NotificationDispatcher is the boundary to the messaging collaborator (LINE
// push, reminders). Implementations are best-effort: a failed dispatch is
// logged and swallowed, it never rolls back a booking or blocks the caller.
type NotificationDispatcher interface {
	BookingConfirmed(ctx context.Context, appointment *entity.Appointment)
	AppointmentEdited(ctx context.Context, appointment *entity.Appointment)
	AppointmentCanceled(ctx context.Context, appointment *entity.Appointment)
}

// ShouldSendEditNotification is the decision table for patient-facing edit
// notifications:
//
//   - any time change notifies;
//   - a specific-to-specific practitioner change notifies;
//   - changing only the practitioner of an auto-assigned appointment does
//     not notify: the patient never chose that practitioner, so the change
//     is administrative and invisible to them.
func ShouldSendEditNotification(timeChanged, practitionerChanged, wasAutoAssigned bool) bool {
	if timeChanged {
		return true
	}
	if practitionerChanged && !wasAutoAssigned {
		return true
	}
	return false
}

// logNotificationDispatcher logs what would be sent. The real LINE client is
// wired in by the messaging service; the scheduling core only needs the hook.
type logNotificationDispatcher struct {
	log *logrus.Logger
}

func NewLogNotificationDispatcher(log *logrus.Logger) NotificationDispatcher {
	return &logNotificationDispatcher{log: log}
}

func (d *logNotificationDispatcher) BookingConfirmed(ctx context.Context, appointment *entity.Appointment) {
	d.log.WithFields(logrus.Fields{
		"appointment_id":  appointment.ID,
		"patient_id":      appointment.PatientID,
		"practitioner_id": appointment.PractitionerID,
	}).Info("notification: booking confirmed")
}

func (d *logNotificationDispatcher) AppointmentEdited(ctx context.Context, appointment *entity.Appointment) {
	d.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
	}).Info("notification: appointment edited")
}

func (d *logNotificationDispatcher) AppointmentCanceled(ctx context.Context, appointment *entity.Appointment) {
	d.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
		"status":         appointment.Status,
	}).Info("notification: appointment canceled")
}
