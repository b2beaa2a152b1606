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
	ErrInsufficientResources = errors.New("required resources are not available for the requested time")
	ErrInvalidInterval       = errors.New("end time must be after start time")
)

// ResourceUsecase implements the resource capacity checker. Two modes:
// a nil selection checks clinic-wide capacity (patient self-service, the
// system will allocate); a non-nil selection, even an empty one, is a
// staff choice validated exactly as given.
type ResourceUsecase interface {
	CheckResourceAvailability(ctx context.Context, clinicID uuid.UUID, req *dto.ResourceAvailabilityRequest) (*dto.ResourceAvailabilityResponse, error)

	// AutoAllocate picks concrete free units for every requirement of the
	// appointment type during [startMinute, endMinute) on date, or fails with
	// ErrInsufficientResources. Runs on the caller's transaction handle.
	AutoAllocate(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) ([]int, error)

	// ValidateSelection checks an explicit selection against one
	// requirement set; used by the availability check and by staff-flow booking.
	ValidateSelection(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, selectedIDs []int, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) (*dto.ResourceAvailabilityResponse, error)
}

type resourceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	typeRepo     repository.AppointmentTypeRepository
	resourceRepo repository.ResourceRepository
}

func NewResourceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	typeRepo repository.AppointmentTypeRepository,
	resourceRepo repository.ResourceRepository,
) ResourceUsecase {
	return &resourceUsecase{
		db:           db,
		log:          log,
		typeRepo:     typeRepo,
		resourceRepo: resourceRepo,
	}
}

func (u *resourceUsecase) CheckResourceAvailability(ctx context.Context, clinicID uuid.UUID, req *dto.ResourceAvailabilityRequest) (*dto.ResourceAvailabilityResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	startMinute, err := scheduling.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	endMinute, err := scheduling.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if endMinute <= startMinute {
		return nil, ErrInvalidInterval
	}

	db := u.db.WithContext(ctx)

	appointmentType, err := u.typeRepo.FindByID(db, clinicID, req.AppointmentTypeID)
	if err != nil {
		u.log.Warnf("Failed to find appointment type %d: %+v", req.AppointmentTypeID, err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}

	if req.SelectedResourceIDs == nil {
		return u.checkGlobalCapacity(db, clinicID, appointmentType, date, startMinute, endMinute, nil)
	}
	return u.ValidateSelection(db, clinicID, appointmentType, *req.SelectedResourceIDs, date, startMinute, endMinute, nil)
}

// checkGlobalCapacity answers "could the system allocate this type's
// requirements somewhere?" without committing to particular units.
func (u *resourceUsecase) checkGlobalCapacity(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) (*dto.ResourceAvailabilityResponse, error) {
	result := &dto.ResourceAvailabilityResponse{
		IsAvailable:                   true,
		SelectionInsufficientWarnings: []dto.SelectionInsufficientWarning{},
		ResourceConflictWarnings:      []dto.ResourceConflictWarning{},
	}

	for _, requirement := range appointmentType.ResourceRequirements {
		free, err := u.freeUnits(db, clinicID, requirement.ResourceTypeID, date, startMinute, endMinute, excludeAppointmentID)
		if err != nil {
			return nil, err
		}
		if len(free) < requirement.Quantity {
			result.IsAvailable = false
			result.SelectionInsufficientWarnings = append(result.SelectionInsufficientWarnings, dto.SelectionInsufficientWarning{
				ResourceTypeID:   requirement.ResourceTypeID,
				RequiredQuantity: requirement.Quantity,
				SelectedQuantity: len(free),
			})
		}
	}
	return result, nil
}

func (u *resourceUsecase) ValidateSelection(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, selectedIDs []int, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) (*dto.ResourceAvailabilityResponse, error) {
	result := &dto.ResourceAvailabilityResponse{
		IsAvailable:                   true,
		SelectionInsufficientWarnings: []dto.SelectionInsufficientWarning{},
		ResourceConflictWarnings:      []dto.ResourceConflictWarning{},
	}

	selected, err := u.resourceRepo.FindByIDs(db, clinicID, selectedIDs)
	if err != nil {
		u.log.Warnf("Failed to load selected resources: %+v", err)
		return nil, err
	}
	selectedByType := make(map[int][]entity.Resource)
	for _, res := range selected {
		selectedByType[res.ResourceTypeID] = append(selectedByType[res.ResourceTypeID], res)
	}

	for _, requirement := range appointmentType.ResourceRequirements {
		chosen := selectedByType[requirement.ResourceTypeID]

		// An explicit selection smaller than the requirement is always
		// insufficient, including the empty list.
		if len(chosen) < requirement.Quantity {
			result.IsAvailable = false
			result.SelectionInsufficientWarnings = append(result.SelectionInsufficientWarnings, dto.SelectionInsufficientWarning{
				ResourceTypeID:   requirement.ResourceTypeID,
				RequiredQuantity: requirement.Quantity,
				SelectedQuantity: len(chosen),
			})
		}
		if len(chosen) == 0 {
			continue
		}

		allocations, err := u.resourceRepo.FindConfirmedAllocations(db, clinicID, requirement.ResourceTypeID, date, excludeAppointmentID)
		if err != nil {
			u.log.Warnf("Failed to load resource allocations: %+v", err)
			return nil, err
		}

		for _, res := range chosen {
			if conflict := findOverlappingAllocation(allocations, res.ID, startMinute, endMinute); conflict != nil {
				result.IsAvailable = false
				result.ResourceConflictWarnings = append(result.ResourceConflictWarnings, dto.ResourceConflictWarning{
					ResourceID:   res.ID,
					ResourceName: res.Name,
					ConflictingAppointment: dto.ConflictingAppointmentInfo{
						AppointmentID:    conflict.AppointmentID,
						PractitionerName: conflict.PractitionerName,
					},
				})
			}
		}
	}
	return result, nil
}

func (u *resourceUsecase) AutoAllocate(db *gorm.DB, clinicID uuid.UUID, appointmentType *entity.AppointmentType, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) ([]int, error) {
	var picked []int
	for _, requirement := range appointmentType.ResourceRequirements {
		free, err := u.freeUnits(db, clinicID, requirement.ResourceTypeID, date, startMinute, endMinute, excludeAppointmentID)
		if err != nil {
			return nil, err
		}
		if len(free) < requirement.Quantity {
			return nil, ErrInsufficientResources
		}
		// Lowest ids first, for determinism.
		sort.Ints(free)
		picked = append(picked, free[:requirement.Quantity]...)
	}
	return picked, nil
}

// freeUnits returns the ids of non-deleted units of a resource type with no
// confirmed allocation overlapping [startMinute, endMinute) on the date.
func (u *resourceUsecase) freeUnits(db *gorm.DB, clinicID uuid.UUID, resourceTypeID int, date time.Time, startMinute, endMinute int, excludeAppointmentID *uuid.UUID) ([]int, error) {
	resources, err := u.resourceRepo.FindActiveByType(db, clinicID, resourceTypeID)
	if err != nil {
		u.log.Warnf("Failed to load resources of type %d: %+v", resourceTypeID, err)
		return nil, err
	}
	allocations, err := u.resourceRepo.FindConfirmedAllocations(db, clinicID, resourceTypeID, date, excludeAppointmentID)
	if err != nil {
		u.log.Warnf("Failed to load resource allocations: %+v", err)
		return nil, err
	}
	return freeResourceIDs(resources, allocations, startMinute, endMinute), nil
}

// freeResourceIDs filters resources down to those without an overlapping
// confirmed allocation.
func freeResourceIDs(resources []entity.Resource, allocations []entity.ResourceAllocationInterval, startMinute, endMinute int) []int {
	var free []int
	for _, res := range resources {
		if findOverlappingAllocation(allocations, res.ID, startMinute, endMinute) == nil {
			free = append(free, res.ID)
		}
	}
	return free
}

// findOverlappingAllocation returns the first confirmed allocation of the
// resource overlapping [startMinute, endMinute), or nil.
func findOverlappingAllocation(allocations []entity.ResourceAllocationInterval, resourceID, startMinute, endMinute int) *entity.ResourceAllocationInterval {
	for i := range allocations {
		alloc := &allocations[i]
		if alloc.ResourceID != resourceID {
			continue
		}
		allocStart, err := scheduling.ParseClockTime(alloc.StartTime)
		if err != nil {
			continue
		}
		allocEnd, err := scheduling.ParseClockTime(alloc.EndTime)
		if err != nil {
			continue
		}
		if scheduling.IntervalsOverlap(startMinute, endMinute, allocStart, allocEnd) {
			return alloc
		}
	}
	return nil
}
