package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	resourceHandler     *handler.ResourceHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	resourceHandler *handler.ResourceHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		resourceHandler:     resourceHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Everything below is clinic-scoped and requires an access token.
	clinic := api.PathPrefix("/clinics/{clinicId}").Subrouter()
	clinic.Use(r.authMiddleware.Authenticate)

	// Availability queries: any authenticated role may look
	clinic.HandleFunc("/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)
	clinic.HandleFunc("/availability/batch", r.availabilityHandler.GetAvailabilityBatch).Methods(http.MethodPost)

	// Booking: patients book for themselves, staff book on their behalf
	booking := clinic.NewRoute().Subrouter()
	booking.Use(middleware.RequireBookingRole)
	booking.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	booking.HandleFunc("/appointments/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Appointment management: clinic-side roles only
	manage := clinic.NewRoute().Subrouter()
	manage.Use(middleware.RequireClinicStaff)
	manage.HandleFunc("/appointments/{id}", r.appointmentHandler.EditAppointment).Methods(http.MethodPut)
	manage.HandleFunc("/appointments/{id}/reassign", r.appointmentHandler.ReassignAppointment).Methods(http.MethodPost)
	manage.HandleFunc("/appointments/{id}/conflicts", r.appointmentHandler.CheckEditConflicts).Methods(http.MethodPost)
	manage.HandleFunc("/resources/availability", r.resourceHandler.CheckAvailability).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
