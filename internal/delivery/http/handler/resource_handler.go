package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type ResourceHandler struct {
	resourceUsecase usecase.ResourceUsecase
	validator       *validator.CustomValidator
}

func NewResourceHandler(resourceUsecase usecase.ResourceUsecase, validator *validator.CustomValidator) *ResourceHandler {
	return &ResourceHandler{
		resourceUsecase: resourceUsecase,
		validator:       validator,
	}
}

// CheckAvailability is a pure read: it reports whether the requested interval
// is feasible resource-wise, with warnings naming what is missing or taken.
func (h *ResourceHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := clinicIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.ResourceAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.resourceUsecase.CheckResourceAvailability(r.Context(), clinicID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentTypeNotFound:
			response.NotFound(w, "Appointment type not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrInvalidInterval:
			response.Error(w, http.StatusBadRequest, "End time must be after start time", nil)
		default:
			response.InternalServerError(w, "Failed to check resource availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Resource availability checked", result)
}
