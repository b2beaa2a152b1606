package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound           = errors.New("clinic not found")
	ErrAppointmentTypeNotFound  = errors.New("appointment type not found")
	ErrPractitionerNotFound     = errors.New("practitioner not found")
	ErrPractitionerNotQualified = errors.New("practitioner is not qualified for this appointment type")
	ErrInvalidDate              = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeFormat        = errors.New("invalid time, expected HH:MM")
)

// AvailabilityUsecase computes bookable slots: working hours minus busy
// events, stepped at the slot granularity, filtered by the clinic's booking
// window and by resource capacity.
type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, clinicID uuid.UUID, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetAvailableSlotsBatch(ctx context.Context, clinicID uuid.UUID, req *dto.BatchAvailabilityRequest) (*dto.BatchAvailabilityResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clock        scheduling.Clock
	clinicRepo   repository.ClinicRepository
	typeRepo     repository.AppointmentTypeRepository
	userRepo     repository.UserRepository
	resourceRepo repository.ResourceRepository
	loader       *scheduleLoader
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock scheduling.Clock,
	clinicRepo repository.ClinicRepository,
	typeRepo repository.AppointmentTypeRepository,
	userRepo repository.UserRepository,
	availabilityRepo repository.AvailabilityRepository,
	calendarRepo repository.CalendarEventRepository,
	resourceRepo repository.ResourceRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		clock:        clock,
		clinicRepo:   clinicRepo,
		typeRepo:     typeRepo,
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		loader:       newScheduleLoader(log, availabilityRepo, calendarRepo),
	}
}

func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, clinicID uuid.UUID, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	batch, err := u.GetAvailableSlotsBatch(ctx, clinicID, &dto.BatchAvailabilityRequest{
		AppointmentTypeID: req.AppointmentTypeID,
		Dates:             []string{req.Date},
		PractitionerID:    req.PractitionerID,
	})
	if err != nil {
		return nil, err
	}
	if len(batch.Days) == 0 {
		// Date fell outside the booking window; an empty day is still a valid
		// answer for a single-date query.
		return &dto.AvailabilityResponse{Date: req.Date, Slots: []dto.SlotResponse{}, Total: 0}, nil
	}
	return &batch.Days[0], nil
}

func (u *availabilityUsecase) GetAvailableSlotsBatch(ctx context.Context, clinicID uuid.UUID, req *dto.BatchAvailabilityRequest) (*dto.BatchAvailabilityResponse, error) {
	db := u.db.WithContext(ctx)

	clinic, err := u.clinicRepo.FindByID(db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	appointmentType, err := u.typeRepo.FindByID(db, clinicID, req.AppointmentTypeID)
	if err != nil {
		u.log.Warnf("Failed to find appointment type %d: %+v", req.AppointmentTypeID, err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}

	practitioners, err := u.resolvePractitioners(db, clinicID, appointmentType, req.PractitionerID)
	if err != nil {
		return nil, err
	}

	loc := clinic.Location()
	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dates = append(dates, date)
	}

	policy := scheduling.NewBookingPolicy(clinic.BookingRestrictionType, clinic.MinimumBookingHoursAhead, clinic.MaxBookingWindowDays)
	now := u.clock.Now().In(loc)

	// Dates beyond the advance window are dropped wholesale, before any
	// schedule work.
	allowedDates := policy.FilterDates(now, dates)
	allowed := make(map[string]bool, len(allowedDates))
	for _, d := range allowedDates {
		allowed[d.Format("2006-01-02")] = true
	}

	practitionerIDs := make([]uuid.UUID, len(practitioners))
	nameByID := make(map[uuid.UUID]string, len(practitioners))
	for i, p := range practitioners {
		practitionerIDs[i] = p.ID
		nameByID[p.ID] = p.FullName
	}

	response := &dto.BatchAvailabilityResponse{Days: make([]dto.AvailabilityResponse, 0, len(dates))}
	for _, date := range dates {
		day := dto.AvailabilityResponse{Date: date.Format("2006-01-02"), Slots: []dto.SlotResponse{}}
		if allowed[day.Date] {
			slots, err := u.slotsForDate(db, clinicID, appointmentType, practitionerIDs, nameByID, policy, now, date)
			if err != nil {
				return nil, err
			}
			day.Slots = slots
		}
		day.Total = len(day.Slots)
		response.Days = append(response.Days, day)
	}
	return response, nil
}

// resolvePractitioners returns the candidate practitioners for a query:
// either the one explicitly requested (which must be qualified), or every
// practitioner qualified for the appointment type.
func (u *availabilityUsecase) resolvePractitioners(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, practitionerID *uuid.UUID) ([]entity.User, error) {
	if practitionerID == nil {
		practitioners, err := u.typeRepo.FindQualifiedPractitioners(db, clinicID, appointmentType.ID)
		if err != nil {
			u.log.Warnf("Failed to load qualified practitioners: %+v", err)
			return nil, err
		}
		return practitioners, nil
	}

	practitioner, err := u.userRepo.FindPractitioner(db, clinicID, *practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner %s: %+v", *practitionerID, err)
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
	return []entity.User{*practitioner}, nil
}

func (u *availabilityUsecase) slotsForDate(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, practitionerIDs []uuid.UUID, nameByID map[uuid.UUID]string, policy scheduling.BookingPolicy, now, date time.Time) ([]dto.SlotResponse, error) {
	schedules, err := u.loader.LoadDaySchedules(db, clinicID, practitionerIDs, date, nil)
	if err != nil {
		return nil, err
	}

	// Today never offers slots that have already started.
	earliestStart := 0
	if scheduling.SameDate(now, date) {
		earliestStart = scheduling.MinuteOfDay(now)
	}

	capacity, err := u.loadDayCapacity(db, clinicID, appointmentType, date)
	if err != nil {
		return nil, err
	}

	duration := appointmentType.DurationMinutes
	slots := []dto.SlotResponse{}
	for _, id := range practitionerIDs {
		sched := schedules[id]
		if sched == nil {
			continue
		}
		for _, startMinute := range scheduling.GenerateSlots(*sched, duration, scheduling.DefaultGranularityMinutes, earliestStart) {
			if !policy.AllowsStart(now, scheduling.StartInstant(date, startMinute)) {
				continue
			}
			if !capacity.canFit(startMinute, startMinute+duration) {
				continue
			}
			slots = append(slots, dto.SlotResponse{
				StartTime:        scheduling.FormatClockTime(startMinute),
				EndTime:          scheduling.FormatClockTime(startMinute + duration),
				PractitionerID:   id,
				PractitionerName: nameByID[id],
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].PractitionerID.String() < slots[j].PractitionerID.String()
	})
	return slots, nil
}

// dayCapacity holds one date's resource picture for an appointment type, so
// per-slot feasibility checks are pure in-memory interval work.
type dayCapacity struct {
	requirements []entity.AppointmentResourceRequirement
	resources    map[int][]entity.Resource                   // by resource type
	allocations  map[int][]entity.ResourceAllocationInterval // by resource type
}

func (u *availabilityUsecase) loadDayCapacity(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, date time.Time) (*dayCapacity, error) {
	capacity := &dayCapacity{
		requirements: appointmentType.ResourceRequirements,
		resources:    map[int][]entity.Resource{},
		allocations:  map[int][]entity.ResourceAllocationInterval{},
	}
	for _, requirement := range capacity.requirements {
		resources, err := u.resourceRepo.FindActiveByType(db, clinicID, requirement.ResourceTypeID)
		if err != nil {
			u.log.Warnf("Failed to load resources of type %d: %+v", requirement.ResourceTypeID, err)
			return nil, err
		}
		allocations, err := u.resourceRepo.FindConfirmedAllocations(db, clinicID, requirement.ResourceTypeID, date, nil)
		if err != nil {
			u.log.Warnf("Failed to load resource allocations: %+v", err)
			return nil, err
		}
		capacity.resources[requirement.ResourceTypeID] = resources
		capacity.allocations[requirement.ResourceTypeID] = allocations
	}
	return capacity, nil
}

// canFit reports whether every resource requirement could be satisfied for
// the interval [startMinute, endMinute).
func (c *dayCapacity) canFit(startMinute, endMinute int) bool {
	for _, requirement := range c.requirements {
		free := freeResourceIDs(c.resources[requirement.ResourceTypeID], c.allocations[requirement.ResourceTypeID], startMinute, endMinute)
		if len(free) < requirement.Quantity {
			return false
		}
	}
	return true
}
