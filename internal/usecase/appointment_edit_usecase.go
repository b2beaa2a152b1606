package usecase

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentCanceled = errors.New("appointment is already canceled")
	ErrPermissionDenied    = errors.New("you are not allowed to modify this appointment")
)

// Actor is the authenticated user performing an appointment mutation, as
// extracted from the access token by the auth middleware.
type Actor struct {
	UserID uuid.UUID
	RoleID int
}

// AppointmentEditUsecase covers the post-booking lifecycle: reschedules,
// practitioner reassignment, conflict probes and cancellation.
type AppointmentEditUsecase interface {
	EditAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error)
	ReassignAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.ReassignAppointmentRequest) (*dto.AppointmentResponse, error)
	// CheckEditConflicts is the read-only probe behind the edit form: would
	// this new time/practitioner collide, ignoring the appointment itself?
	CheckEditConflicts(ctx context.Context, clinicID uuid.UUID, appointmentID uuid.UUID, req *dto.EditConflictCheckRequest) (*dto.EditConflictsResponse, error)
	CancelAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest) error
}

type appointmentEditUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           scheduling.Clock
	clinicRepo      repository.ClinicRepository
	typeRepo        repository.AppointmentTypeRepository
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	calendarRepo    repository.CalendarEventRepository
	appointmentRepo repository.AppointmentRepository
	resourceRepo    repository.ResourceRepository
	loader          *scheduleLoader
	resources       ResourceUsecase
	audit           service.AuditService
	notifier        service.NotificationDispatcher
}

func NewAppointmentEditUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock scheduling.Clock,
	clinicRepo repository.ClinicRepository,
	typeRepo repository.AppointmentTypeRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	availabilityRepo repository.AvailabilityRepository,
	calendarRepo repository.CalendarEventRepository,
	appointmentRepo repository.AppointmentRepository,
	resourceRepo repository.ResourceRepository,
	resources ResourceUsecase,
	audit service.AuditService,
	notifier service.NotificationDispatcher,
) AppointmentEditUsecase {
	return &appointmentEditUsecase{
		db:              db,
		log:             log,
		clock:           clock,
		clinicRepo:      clinicRepo,
		typeRepo:        typeRepo,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		calendarRepo:    calendarRepo,
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		loader:          newScheduleLoader(log, availabilityRepo, calendarRepo),
		resources:       resources,
		audit:           audit,
		notifier:        notifier,
	}
}

// canModifyAppointment is the role matrix for appointment mutations:
//
//   - admins modify anything;
//   - staff modify any appointment except auto-assigned ones, which only an
//     admin may touch;
//   - practitioners modify their own non-auto-assigned appointments;
//   - everyone else is denied.
func canModifyAppointment(actor Actor, appointment *entity.Appointment) bool {
	switch actor.RoleID {
	case entity.RoleIDAdmin:
		return true
	case entity.RoleIDStaff:
		return !appointment.IsAutoAssigned
	case entity.RoleIDPractitioner:
		return appointment.PractitionerID == actor.UserID && !appointment.IsAutoAssigned
	default:
		return false
	}
}

// patientOwnsAppointment reports whether the patient record resolved for an
// acting patient user is the one the appointment belongs to. A nil patient
// means the user has no patient record in this clinic and owns nothing.
func patientOwnsAppointment(patient *entity.Patient, appointment *entity.Appointment) bool {
	return patient != nil && patient.ID == appointment.PatientID
}

func (u *appointmentEditUsecase) EditAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, clinic, err := u.loadConfirmed(db, clinicID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !canModifyAppointment(actor, appointment) {
		return nil, ErrPermissionDenied
	}

	loc := clinic.Location()

	// Resolve the target schedule, defaulting every axis to its current value.
	newDate := appointment.CalendarEvent.Date
	if req.Date != nil {
		newDate, err = time.ParseInLocation("2006-01-02", *req.Date, loc)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}
	currentStart, err := scheduling.ParseClockTime(appointment.CalendarEvent.StartTime)
	if err != nil {
		return nil, err
	}
	newStart := currentStart
	if req.StartTime != nil {
		newStart, err = scheduling.ParseClockTime(*req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
	}
	newPractitionerID := appointment.PractitionerID
	if req.PractitionerID != nil {
		newPractitionerID = *req.PractitionerID
	}

	appointmentType, err := u.typeRepo.FindByID(db, clinicID, appointment.AppointmentTypeID)
	if err != nil {
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}
	newEnd := newStart + appointmentType.DurationMinutes

	timeChanged := !scheduling.SameDate(newDate, appointment.CalendarEvent.Date) || newStart != currentStart
	practitionerChanged := newPractitionerID != appointment.PractitionerID
	wasAutoAssigned := appointment.IsAutoAssigned

	if practitionerChanged {
		if err := u.verifyQualifiedPractitioner(db, clinicID, appointmentType.ID, newPractitionerID); err != nil {
			return nil, err
		}
	}

	oldValue := map[string]interface{}{
		"practitioner_id": appointment.PractitionerID,
		"date":            appointment.CalendarEvent.Date.Format("2006-01-02"),
		"start_time":      appointment.CalendarEvent.StartTime,
		"end_time":        appointment.CalendarEvent.EndTime,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		excludeEventID := appointment.CalendarEventID
		schedules, err := u.loader.LoadDaySchedules(tx, clinicID, []uuid.UUID{newPractitionerID}, newDate, &excludeEventID)
		if err != nil {
			return err
		}
		sched := schedules[newPractitionerID]
		if sched == nil || !sched.FitsWorkingHours(newStart, newEnd) {
			return ErrOutsideWorkingHours
		}
		if sched.Conflicts(newStart, newEnd) {
			return ErrTimeSlotConflict
		}

		// Reallocate resources for the new interval. Rows are dropped and
		// recreated, never mutated.
		excludeAppointmentID := appointment.ID
		var resourceIDs []int
		if req.SelectedResourceIDs != nil {
			check, err := u.resources.ValidateSelection(tx, clinicID, appointmentType, *req.SelectedResourceIDs, newDate, newStart, newEnd, &excludeAppointmentID)
			if err != nil {
				return err
			}
			if !check.IsAvailable {
				return ErrInsufficientResources
			}
			resourceIDs = *req.SelectedResourceIDs
		} else {
			resourceIDs, err = u.resources.AutoAllocate(tx, clinicID, appointmentType, newDate, newStart, newEnd, &excludeAppointmentID)
			if err != nil {
				return err
			}
		}
		if err := u.resourceRepo.DeleteAllocationsByAppointment(tx, appointment.ID); err != nil {
			return err
		}
		if len(resourceIDs) > 0 {
			allocations := make([]entity.AppointmentResourceAllocation, len(resourceIDs))
			for i, id := range resourceIDs {
				allocations[i] = entity.AppointmentResourceAllocation{
					AppointmentID: appointment.ID,
					ResourceID:    id,
				}
			}
			if err := u.resourceRepo.CreateAllocations(tx, allocations); err != nil {
				return err
			}
		}

		if err := u.calendarRepo.UpdateTimes(tx, appointment.CalendarEventID, scheduling.DateOnly(newDate), scheduling.FormatClockTime(newStart), scheduling.FormatClockTime(newEnd)); err != nil {
			return err
		}
		if practitionerChanged {
			if err := u.calendarRepo.UpdatePractitioner(tx, appointment.CalendarEventID, newPractitionerID); err != nil {
				return err
			}
			appointment.MarkReassigned(actor.UserID, u.clock.Now())
			appointment.PractitionerID = newPractitionerID
			if err := u.appointmentRepo.Save(tx, appointment); err != nil {
				return err
			}
		}

		return u.audit.LogAppointmentChange(tx, clinicID, appointment.ID, &actor.UserID, entity.AuditActionAppointmentEdit, oldValue, map[string]interface{}{
			"practitioner_id": newPractitionerID,
			"date":            newDate.Format("2006-01-02"),
			"start_time":      scheduling.FormatClockTime(newStart),
			"end_time":        scheduling.FormatClockTime(newEnd),
		})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		return nil, classifyBookingError(txErr)
	}

	updated, err := u.appointmentRepo.FindByID(db, clinicID, appointment.ID)
	if err != nil {
		return nil, err
	}

	if service.ShouldSendEditNotification(timeChanged, practitionerChanged, wasAutoAssigned) {
		u.notifier.AppointmentEdited(ctx, updated)
	}
	return converter.AppointmentToResponse(updated), nil
}

func (u *appointmentEditUsecase) ReassignAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.ReassignAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, _, err := u.loadConfirmed(db, clinicID, appointmentID)
	if err != nil {
		return nil, err
	}
	// Reassignment is an administrative correction; practitioners cannot hand
	// appointments to each other.
	if actor.RoleID != entity.RoleIDAdmin && actor.RoleID != entity.RoleIDStaff {
		return nil, ErrPermissionDenied
	}
	if actor.RoleID == entity.RoleIDStaff && appointment.IsAutoAssigned {
		return nil, ErrPermissionDenied
	}
	if req.PractitionerID == appointment.PractitionerID {
		return converter.AppointmentToResponse(appointment), nil
	}

	if err := u.verifyQualifiedPractitioner(db, clinicID, appointment.AppointmentTypeID, req.PractitionerID); err != nil {
		return nil, err
	}

	startMinute, err := scheduling.ParseClockTime(appointment.CalendarEvent.StartTime)
	if err != nil {
		return nil, err
	}
	endMinute, err := scheduling.ParseClockTime(appointment.CalendarEvent.EndTime)
	if err != nil {
		return nil, err
	}

	wasAutoAssigned := appointment.IsAutoAssigned
	oldPractitionerID := appointment.PractitionerID

	txErr := db.Transaction(func(tx *gorm.DB) error {
		excludeEventID := appointment.CalendarEventID
		schedules, err := u.loader.LoadDaySchedules(tx, clinicID, []uuid.UUID{req.PractitionerID}, appointment.CalendarEvent.Date, &excludeEventID)
		if err != nil {
			return err
		}
		sched := schedules[req.PractitionerID]
		if sched == nil || !sched.FitsWorkingHours(startMinute, endMinute) {
			return ErrOutsideWorkingHours
		}
		if sched.Conflicts(startMinute, endMinute) {
			return ErrTimeSlotConflict
		}

		if err := u.calendarRepo.UpdatePractitioner(tx, appointment.CalendarEventID, req.PractitionerID); err != nil {
			return err
		}
		appointment.MarkReassigned(actor.UserID, u.clock.Now())
		appointment.PractitionerID = req.PractitionerID
		if err := u.appointmentRepo.Save(tx, appointment); err != nil {
			return err
		}

		return u.audit.LogAppointmentChange(tx, clinicID, appointment.ID, &actor.UserID, entity.AuditActionAppointmentReassign,
			map[string]interface{}{"practitioner_id": oldPractitionerID},
			map[string]interface{}{"practitioner_id": req.PractitionerID})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		return nil, classifyBookingError(txErr)
	}

	updated, err := u.appointmentRepo.FindByID(db, clinicID, appointment.ID)
	if err != nil {
		return nil, err
	}

	if service.ShouldSendEditNotification(false, true, wasAutoAssigned) {
		u.notifier.AppointmentEdited(ctx, updated)
	}
	return converter.AppointmentToResponse(updated), nil
}

func (u *appointmentEditUsecase) CheckEditConflicts(ctx context.Context, clinicID uuid.UUID, appointmentID uuid.UUID, req *dto.EditConflictCheckRequest) (*dto.EditConflictsResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, clinic, err := u.loadConfirmed(db, clinicID, appointmentID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, clinic.Location())
	if err != nil {
		return nil, ErrInvalidDate
	}
	startMinute, err := scheduling.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	appointmentType, err := u.typeRepo.FindByID(db, clinicID, appointment.AppointmentTypeID)
	if err != nil {
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}
	endMinute := startMinute + appointmentType.DurationMinutes

	practitionerID := appointment.PractitionerID
	if req.PractitionerID != nil {
		practitionerID = *req.PractitionerID
	}

	excludeEventID := appointment.CalendarEventID
	busy, err := u.calendarRepo.FindBusyByPractitionersAndDate(db, clinicID, []uuid.UUID{practitionerID}, date, &excludeEventID)
	if err != nil {
		u.log.Warnf("Failed to load busy calendar events: %+v", err)
		return nil, err
	}

	response := &dto.EditConflictsResponse{Conflicts: []dto.ConflictingAppointment{}}
	for _, ev := range busy {
		evStart, err := scheduling.ParseClockTime(ev.StartTime)
		if err != nil {
			return nil, err
		}
		evEnd, err := scheduling.ParseClockTime(ev.EndTime)
		if err != nil {
			return nil, err
		}
		blocked := scheduling.BusyInterval{Start: evStart, End: evEnd, BufferMinutes: ev.BufferMinutes}
		if !scheduling.IntervalsOverlap(startMinute, endMinute, blocked.Start, blocked.BlocksUntil()) {
			continue
		}
		conflict := dto.ConflictingAppointment{
			PractitionerID: ev.PractitionerID,
			StartTime:      ev.StartTime,
			EndTime:        ev.EndTime,
		}
		if ev.AppointmentID != nil {
			conflict.AppointmentID = *ev.AppointmentID
		}
		response.Conflicts = append(response.Conflicts, conflict)
	}
	response.HasConflicts = len(response.Conflicts) > 0
	return response, nil
}

func (u *appointmentEditUsecase) CancelAppointment(ctx context.Context, clinicID uuid.UUID, actor Actor, appointmentID uuid.UUID, req *dto.CancelAppointmentRequest) error {
	db := u.db.WithContext(ctx)

	appointment, _, err := u.loadConfirmed(db, clinicID, appointmentID)
	if err != nil {
		return err
	}
	if actor.RoleID == entity.RoleIDPatient {
		patient, err := u.patientRepo.FindByUserID(db, clinicID, actor.UserID)
		if err != nil {
			u.log.Warnf("Failed to resolve patient for user %s: %+v", actor.UserID, err)
			return err
		}
		if !patientOwnsAppointment(patient, appointment) {
			return ErrPermissionDenied
		}
	} else if !canModifyAppointment(actor, appointment) {
		return ErrPermissionDenied
	}

	status := entity.AppointmentStatusCanceledByClinic
	if actor.RoleID == entity.RoleIDPatient {
		status = entity.AppointmentStatusCanceledByPatient
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Guarded update: only a still-confirmed row transitions, so two
		// concurrent cancels cannot both report success.
		affected, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAppointmentCanceled
		}
		if err := u.calendarRepo.MarkCanceled(tx, appointment.CalendarEventID); err != nil {
			return err
		}
		if err := u.resourceRepo.DeleteAllocationsByAppointment(tx, appointment.ID); err != nil {
			return err
		}
		return u.audit.LogAppointmentChange(tx, clinicID, appointment.ID, &actor.UserID, entity.AuditActionAppointmentCancel,
			map[string]interface{}{"status": entity.AppointmentStatusConfirmed},
			map[string]interface{}{"status": status, "reason": req.Reason})
	})
	if txErr != nil {
		return txErr
	}

	appointment.Status = status
	u.notifier.AppointmentCanceled(ctx, appointment)
	return nil
}

// loadConfirmed fetches the appointment with its clinic, rejecting missing or
// already-canceled rows.
func (u *appointmentEditUsecase) loadConfirmed(db *gorm.DB, clinicID, appointmentID uuid.UUID) (*entity.Appointment, *entity.Clinic, error) {
	appointment, err := u.appointmentRepo.FindByID(db, clinicID, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, nil, err
	}
	if appointment == nil {
		return nil, nil, ErrAppointmentNotFound
	}
	if appointment.IsCanceled() {
		return nil, nil, ErrAppointmentCanceled
	}

	clinic, err := u.clinicRepo.FindByID(db, clinicID)
	if err != nil {
		return nil, nil, err
	}
	if clinic == nil {
		return nil, nil, ErrClinicNotFound
	}
	return appointment, clinic, nil
}

func (u *appointmentEditUsecase) verifyQualifiedPractitioner(db *gorm.DB, clinicID uuid.UUID, appointmentTypeID int, practitionerID uuid.UUID) error {
	practitioner, err := u.userRepo.FindPractitioner(db, clinicID, practitionerID)
	if err != nil {
		return err
	}
	if practitioner == nil {
		return ErrPractitionerNotFound
	}
	qualified, err := u.typeRepo.IsPractitionerQualified(db, appointmentTypeID, practitionerID)
	if err != nil {
		return err
	}
	if !qualified {
		return ErrPractitionerNotQualified
	}
	return nil
}
