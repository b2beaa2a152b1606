package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
)

func TestWriteBookingErrorStatusCodes(t *testing.T) {
	h := &AppointmentHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"clinic not found", usecase.ErrClinicNotFound, http.StatusNotFound},
		{"patient not found", usecase.ErrPatientNotFound, http.StatusNotFound},
		{"appointment not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"not qualified", usecase.ErrPractitionerNotQualified, http.StatusUnprocessableEntity},
		{"outside booking window", usecase.ErrOutsideBookingWindow, http.StatusUnprocessableEntity},
		{"outside working hours", usecase.ErrOutsideWorkingHours, http.StatusUnprocessableEntity},
		{"insufficient resources report a conflict", usecase.ErrInsufficientResources, http.StatusConflict},
		{"slot conflict", usecase.ErrTimeSlotConflict, http.StatusConflict},
		{"no practitioner available", usecase.ErrNoPractitionerAvailable, http.StatusConflict},
		{"already canceled", usecase.ErrAppointmentCanceled, http.StatusConflict},
		{"booking in flight", service.ErrBookingInFlight, http.StatusConflict},
		{"permission denied", usecase.ErrPermissionDenied, http.StatusForbidden},
		{"invalid date", usecase.ErrInvalidDate, http.StatusBadRequest},
		{"invalid time", usecase.ErrInvalidTimeFormat, http.StatusBadRequest},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeBookingError(rec, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("writeBookingError(%v) status = %d, want %d", tt.err, rec.Code, tt.wantStatus)
			}
		})
	}
}
