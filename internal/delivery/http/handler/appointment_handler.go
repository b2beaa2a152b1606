package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	editUsecase    usecase.AppointmentEditUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(
	bookingUsecase usecase.BookingUsecase,
	editUsecase usecase.AppointmentEditUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		editUsecase:    editUsecase,
		validator:      validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	var actorUserID *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		actorUserID = &userID
	}

	appointment, err := h.bookingUsecase.CreateAppointment(r.Context(), clinicID, actorUserID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) EditAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, appointmentID, actor, ok := h.mutationScope(w, r)
	if !ok {
		return
	}

	var req dto.EditAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.editUsecase.EditAppointment(r.Context(), clinicID, actor, appointmentID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) ReassignAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, appointmentID, actor, ok := h.mutationScope(w, r)
	if !ok {
		return
	}

	var req dto.ReassignAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.editUsecase.ReassignAppointment(r.Context(), clinicID, actor, appointmentID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment reassigned successfully", appointment)
}

func (h *AppointmentHandler) CheckEditConflicts(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return
	}
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.EditConflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	conflicts, err := h.editUsecase.CheckEditConflicts(r.Context(), clinicID, appointmentID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Conflict check completed", conflicts)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	clinicID, appointmentID, actor, ok := h.mutationScope(w, r)
	if !ok {
		return
	}

	// The cancel body is optional.
	var req dto.CancelAppointmentRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.editUsecase.CancelAppointment(r.Context(), clinicID, actor, appointmentID, &req); err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment canceled successfully", nil)
}

// mutationScope extracts the clinic id, appointment id and acting user shared
// by every appointment mutation endpoint.
func (h *AppointmentHandler) mutationScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, usecase.Actor, bool) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, usecase.Actor{}, false
	}
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, uuid.Nil, usecase.Actor{}, false
	}
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return uuid.Nil, uuid.Nil, usecase.Actor{}, false
	}
	return clinicID, appointmentID, actor, true
}

func (h *AppointmentHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrClinicNotFound:
		response.NotFound(w, "Clinic not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrAppointmentTypeNotFound:
		response.NotFound(w, "Appointment type not found")
	case usecase.ErrPractitionerNotFound:
		response.NotFound(w, "Practitioner not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPractitionerNotQualified:
		response.UnprocessableEntity(w, "Practitioner is not qualified for this appointment type")
	case usecase.ErrOutsideBookingWindow:
		response.UnprocessableEntity(w, "The requested time is outside the clinic's booking window")
	case usecase.ErrOutsideWorkingHours:
		response.UnprocessableEntity(w, "The requested time is outside the practitioner's working hours")
	// Resource shortage competes for the same capacity as a slot conflict, so
	// it reports the same 409 class.
	case usecase.ErrInsufficientResources:
		response.Conflict(w, "Required resources are not available for the requested time")
	case usecase.ErrTimeSlotConflict:
		response.Conflict(w, "The requested time slot is no longer available")
	case usecase.ErrNoPractitionerAvailable:
		response.Conflict(w, "No qualified practitioner is available at the requested time")
	case usecase.ErrAppointmentCanceled:
		response.Conflict(w, "Appointment is already canceled")
	case service.ErrBookingInFlight:
		response.Conflict(w, "A booking with this idempotency key is still in progress")
	case usecase.ErrPermissionDenied:
		response.Forbidden(w, "You are not allowed to modify this appointment")
	case usecase.ErrInvalidDate:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	case usecase.ErrInvalidTimeFormat:
		response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
	default:
		response.InternalServerError(w, "Failed to process appointment")
	}
}
