package usecase

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound         = errors.New("patient not found")
	ErrTimeSlotConflict        = errors.New("the requested time slot is no longer available")
	ErrNoPractitionerAvailable = errors.New("no qualified practitioner is available at the requested time")
	ErrOutsideBookingWindow    = errors.New("the requested time is outside the clinic's booking window")
	ErrOutsideWorkingHours     = errors.New("the requested time is outside the practitioner's working hours")
)

// Postgres error codes that mean a concurrent booking won the slot: a
// serialization failure under SERIALIZABLE or an exclusion-constraint hit.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeExclusionViolation   = "23P01"
)

// BookingUsecase creates appointments. The critical section runs in one
// SERIALIZABLE transaction: conflicts are re-checked against committed data
// inside it, so two near-simultaneous requests for the same slot cannot both
// succeed.
type BookingUsecase interface {
	CreateAppointment(ctx context.Context, clinicID uuid.UUID, actorUserID *uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           scheduling.Clock
	clinicRepo      repository.ClinicRepository
	patientRepo     repository.PatientRepository
	typeRepo        repository.AppointmentTypeRepository
	userRepo        repository.UserRepository
	calendarRepo    repository.CalendarEventRepository
	appointmentRepo repository.AppointmentRepository
	resourceRepo    repository.ResourceRepository
	loader          *scheduleLoader
	resources       ResourceUsecase
	idempotency     *service.IdempotencyService
	audit           service.AuditService
	notifier        service.NotificationDispatcher
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock scheduling.Clock,
	clinicRepo repository.ClinicRepository,
	patientRepo repository.PatientRepository,
	typeRepo repository.AppointmentTypeRepository,
	userRepo repository.UserRepository,
	availabilityRepo repository.AvailabilityRepository,
	calendarRepo repository.CalendarEventRepository,
	appointmentRepo repository.AppointmentRepository,
	resourceRepo repository.ResourceRepository,
	resources ResourceUsecase,
	idempotency *service.IdempotencyService,
	audit service.AuditService,
	notifier service.NotificationDispatcher,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		clock:           clock,
		clinicRepo:      clinicRepo,
		patientRepo:     patientRepo,
		typeRepo:        typeRepo,
		userRepo:        userRepo,
		calendarRepo:    calendarRepo,
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		loader:          newScheduleLoader(log, availabilityRepo, calendarRepo),
		resources:       resources,
		idempotency:     idempotency,
		audit:           audit,
		notifier:        notifier,
	}
}

func (u *bookingUsecase) CreateAppointment(ctx context.Context, clinicID uuid.UUID, actorUserID *uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	if req.IdempotencyKey != "" {
		existingID, err := u.idempotency.Reserve(ctx, clinicID, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existingID != nil {
			existing, err := u.appointmentRepo.FindByID(db, clinicID, *existingID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return converter.AppointmentToResponse(existing), nil
			}
			// The recorded appointment vanished; fall through and book fresh.
		}
	}

	appointment, err := u.createAppointment(ctx, db, clinicID, actorUserID, req)

	if req.IdempotencyKey != "" {
		if err != nil {
			u.idempotency.Release(ctx, clinicID, req.IdempotencyKey)
		} else {
			u.idempotency.Complete(ctx, clinicID, req.IdempotencyKey, appointment.ID)
		}
	}
	if err != nil {
		return nil, err
	}

	u.notifier.BookingConfirmed(ctx, appointment)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) createAppointment(ctx context.Context, db *gorm.DB, clinicID uuid.UUID, actorUserID *uuid.UUID, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	clinic, err := u.clinicRepo.FindByID(db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	patient, err := u.patientRepo.FindByID(db, clinicID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointmentType, err := u.typeRepo.FindByID(db, clinicID, req.AppointmentTypeID)
	if err != nil {
		u.log.Warnf("Failed to find appointment type %d: %+v", req.AppointmentTypeID, err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}

	loc := clinic.Location()
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	startMinute, err := scheduling.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	endMinute := startMinute + appointmentType.DurationMinutes

	policy := scheduling.NewBookingPolicy(clinic.BookingRestrictionType, clinic.MinimumBookingHoursAhead, clinic.MaxBookingWindowDays)
	now := u.clock.Now().In(loc)
	if !policy.WithinWindow(now, date) || !policy.AllowsStart(now, scheduling.StartInstant(date, startMinute)) {
		return nil, ErrOutsideBookingWindow
	}

	var candidates []entity.User
	if req.PractitionerID != nil {
		practitioner, err := u.userRepo.FindPractitioner(db, clinicID, *req.PractitionerID)
		if err != nil {
			return nil, err
		}
		if practitioner == nil {
			return nil, ErrPractitionerNotFound
		}
		qualified, err := u.typeRepo.IsPractitionerQualified(db, appointmentType.ID, practitioner.ID)
		if err != nil {
			return nil, err
		}
		if !qualified {
			return nil, ErrPractitionerNotQualified
		}
		candidates = []entity.User{*practitioner}
	} else {
		candidates, err = u.typeRepo.FindQualifiedPractitioners(db, clinicID, appointmentType.ID)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrNoPractitionerAvailable
		}
	}

	autoAssigned := req.PractitionerID == nil

	var appointment *entity.Appointment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Everything before this point was advisory; from here on every check
		// runs against the transaction's snapshot and the commit fails if a
		// concurrent booking invalidated it.
		practitionerID, err := u.selectPractitioner(tx, clinicID, candidates, date, startMinute, endMinute, autoAssigned)
		if err != nil {
			return err
		}

		resourceIDs, err := u.resolveResources(tx, clinicID, appointmentType, req.SelectedResourceIDs, date, startMinute, endMinute)
		if err != nil {
			return err
		}

		event := &entity.CalendarEvent{
			ClinicID:       clinicID,
			PractitionerID: practitionerID,
			Date:           scheduling.DateOnly(date),
			StartTime:      scheduling.FormatClockTime(startMinute),
			EndTime:        scheduling.FormatClockTime(endMinute),
			Description:    appointmentType.Name,
		}
		if err := u.calendarRepo.Create(tx, event); err != nil {
			return err
		}

		appointment = &entity.Appointment{
			ClinicID:               clinicID,
			PatientID:              req.PatientID,
			PractitionerID:         practitionerID,
			AppointmentTypeID:      appointmentType.ID,
			CalendarEventID:        event.ID,
			Status:                 entity.AppointmentStatusConfirmed,
			IsAutoAssigned:         autoAssigned,
			OriginallyAutoAssigned: autoAssigned,
		}
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
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

		return u.audit.LogAppointmentChange(tx, clinicID, appointment.ID, actorUserID, entity.AuditActionAppointmentCreate, nil, map[string]interface{}{
			"practitioner_id": practitionerID,
			"date":            req.Date,
			"start_time":      event.StartTime,
			"end_time":        event.EndTime,
			"auto_assigned":   autoAssigned,
		})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if txErr != nil {
		return nil, classifyBookingError(txErr)
	}

	full, err := u.appointmentRepo.FindByID(db, clinicID, appointment.ID)
	if err != nil || full == nil {
		// Reload is cosmetic; fall back to the row we just wrote.
		return appointment, nil
	}
	return full, nil
}

// selectPractitioner verifies working hours and conflicts inside the
// transaction and, for auto-assignment, picks the least-loaded free candidate.
func (u *bookingUsecase) selectPractitioner(tx *gorm.DB, clinicID uuid.UUID, candidates []entity.User, date time.Time, startMinute, endMinute int, autoAssigned bool) (uuid.UUID, error) {
	candidateIDs := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		candidateIDs[i] = c.ID
	}

	schedules, err := u.loader.LoadDaySchedules(tx, clinicID, candidateIDs, date, nil)
	if err != nil {
		return uuid.Nil, err
	}

	if !autoAssigned {
		sched := schedules[candidateIDs[0]]
		if sched == nil || !sched.FitsWorkingHours(startMinute, endMinute) {
			return uuid.Nil, ErrOutsideWorkingHours
		}
		if sched.Conflicts(startMinute, endMinute) {
			return uuid.Nil, ErrTimeSlotConflict
		}
		return candidateIDs[0], nil
	}

	var free []uuid.UUID
	for _, id := range candidateIDs {
		sched := schedules[id]
		if sched != nil && sched.FitsWorkingHours(startMinute, endMinute) && !sched.Conflicts(startMinute, endMinute) {
			free = append(free, id)
		}
	}
	if len(free) == 0 {
		return uuid.Nil, ErrNoPractitionerAvailable
	}

	loads, err := u.appointmentRepo.CountConfirmedByPractitionersAndDate(tx, clinicID, free, date)
	if err != nil {
		return uuid.Nil, err
	}
	return pickLeastLoaded(free, loads), nil
}

func (u *bookingUsecase) resolveResources(tx *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, selected *[]int, date time.Time, startMinute, endMinute int) ([]int, error) {
	if selected == nil {
		return u.resources.AutoAllocate(tx, clinicID, appointmentType, date, startMinute, endMinute, nil)
	}
	check, err := u.resources.ValidateSelection(tx, clinicID, appointmentType, *selected, date, startMinute, endMinute, nil)
	if err != nil {
		return nil, err
	}
	if !check.IsAvailable {
		return nil, ErrInsufficientResources
	}
	return *selected, nil
}

// pickLeastLoaded returns the candidate with the fewest confirmed appointments
// on the date. Candidates missing from loads count as zero. Ties break on the
// practitioner id string, ascending, so repeated runs with the same inputs
// assign the same practitioner.
func pickLeastLoaded(candidates []uuid.UUID, loads []entity.PractitionerLoad) uuid.UUID {
	loadByID := make(map[uuid.UUID]int, len(loads))
	for _, l := range loads {
		loadByID[l.PractitionerID] = l.Appointments
	}

	ordered := make([]uuid.UUID, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := loadByID[ordered[i]], loadByID[ordered[j]]
		if li != lj {
			return li < lj
		}
		return ordered[i].String() < ordered[j].String()
	})
	return ordered[0]
}

// classifyBookingError maps database-level concurrency failures onto the slot
// conflict error so callers see one consistent signal regardless of whether
// the in-transaction re-check or the database itself caught the race.
func classifyBookingError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgCodeSerializationFailure || pgErr.Code == pgCodeExclusionViolation {
			return ErrTimeSlotConflict
		}
	}
	return err
}
