package usecase

import (
	"testing"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func TestCanModifyAppointment(t *testing.T) {
	practitionerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	otherUserID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		name         string
		roleID       int
		userID       uuid.UUID
		autoAssigned bool
		want         bool
	}{
		{"admin modifies manual appointments", entity.RoleIDAdmin, otherUserID, false, true},
		{"admin modifies auto-assigned appointments", entity.RoleIDAdmin, otherUserID, true, true},
		{"staff modifies manual appointments", entity.RoleIDStaff, otherUserID, false, true},
		{"staff cannot modify auto-assigned appointments", entity.RoleIDStaff, otherUserID, true, false},
		{"practitioner modifies own manual appointment", entity.RoleIDPractitioner, practitionerID, false, true},
		{"practitioner cannot modify own auto-assigned appointment", entity.RoleIDPractitioner, practitionerID, true, false},
		{"practitioner cannot modify someone else's appointment", entity.RoleIDPractitioner, otherUserID, false, false},
		{"patient role is denied", entity.RoleIDPatient, otherUserID, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := &entity.Appointment{
				PractitionerID: practitionerID,
				IsAutoAssigned: tt.autoAssigned,
			}
			actor := Actor{UserID: tt.userID, RoleID: tt.roleID}
			if got := canModifyAppointment(actor, appointment); got != tt.want {
				t.Errorf("canModifyAppointment(role=%d, auto=%v) = %v, want %v", tt.roleID, tt.autoAssigned, got, tt.want)
			}
		})
	}
}

func TestPatientOwnsAppointment(t *testing.T) {
	ownPatientID := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	otherPatientID := uuid.MustParse("55555555-5555-5555-5555-555555555555")

	appointment := &entity.Appointment{PatientID: ownPatientID}

	tests := []struct {
		name    string
		patient *entity.Patient
		want    bool
	}{
		{"patient cancels their own appointment", &entity.Patient{ID: ownPatientID}, true},
		{"patient cannot cancel another patient's appointment", &entity.Patient{ID: otherPatientID}, false},
		{"user without a patient record owns nothing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := patientOwnsAppointment(tt.patient, appointment); got != tt.want {
				t.Errorf("patientOwnsAppointment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkReassignedKeepsOriginalFlag(t *testing.T) {
	byUser := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	appointment := &entity.Appointment{
		IsAutoAssigned:         true,
		OriginallyAutoAssigned: true,
	}
	appointment.MarkReassigned(byUser, appointment.CreatedAt)

	if appointment.IsAutoAssigned {
		t.Error("IsAutoAssigned should drop to false after reassignment")
	}
	if !appointment.OriginallyAutoAssigned {
		t.Error("OriginallyAutoAssigned must stay true after reassignment")
	}

	// A second reassignment must not resurrect either flag.
	appointment.MarkReassigned(byUser, appointment.CreatedAt)
	if appointment.IsAutoAssigned || !appointment.OriginallyAutoAssigned {
		t.Error("flags must be stable across repeated reassignments")
	}
}
