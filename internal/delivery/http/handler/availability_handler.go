package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// clinicIDFromRequest parses the clinic id path variable and checks it against
// the clinic claimed in the access token. Cross-clinic access is rejected
// before any usecase runs.
func clinicIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	clinicID, err := uuid.Parse(vars["clinicId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return uuid.Nil, false
	}

	tokenClinicID, ok := middleware.GetClinicIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Clinic information not found")
		return uuid.Nil, false
	}
	if tokenClinicID != clinicID {
		response.Forbidden(w, "You don't have access to this clinic")
		return uuid.Nil, false
	}
	return clinicID, true
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	appointmentTypeID, err := strconv.Atoi(query.Get("appointment_type_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment type ID", nil)
		return
	}

	req := dto.AvailabilityRequest{
		AppointmentTypeID: appointmentTypeID,
		Date:              query.Get("date"),
	}
	if raw := query.Get("practitioner_id"); raw != "" {
		practitionerID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid practitioner ID", nil)
			return
		}
		req.PractitionerID = &practitionerID
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), clinicID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) GetAvailabilityBatch(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.BatchAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.GetAvailableSlotsBatch(r.Context(), clinicID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrClinicNotFound:
		response.NotFound(w, "Clinic not found")
	case usecase.ErrAppointmentTypeNotFound:
		response.NotFound(w, "Appointment type not found")
	case usecase.ErrPractitionerNotFound:
		response.NotFound(w, "Practitioner not found")
	case usecase.ErrPractitionerNotQualified:
		response.UnprocessableEntity(w, "Practitioner is not qualified for this appointment type")
	case usecase.ErrInvalidDate:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	default:
		response.InternalServerError(w, "Failed to get availability")
	}
}
