package usecase

import (
	"testing"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func someAppointmentID() uuid.UUID {
	return uuid.MustParse("99999999-9999-9999-9999-999999999999")
}

func TestFreeResourceIDs(t *testing.T) {
	rooms := []entity.Resource{
		{ID: 1, Name: "Room A"},
		{ID: 2, Name: "Room B"},
	}
	// Room A is taken 10:00-11:00.
	allocations := []entity.ResourceAllocationInterval{
		{ResourceID: 1, AppointmentID: someAppointmentID(), PractitionerName: "Dr. Sato", StartTime: "10:00", EndTime: "11:00"},
	}

	tests := []struct {
		name        string
		startMinute int
		endMinute   int
		want        []int
	}{
		{"overlap start of allocation", 9*60 + 30, 10*60 + 30, []int{2}},
		{"inside allocation", 10 * 60, 10*60 + 30, []int{2}},
		{"touching end of allocation is free", 11 * 60, 12 * 60, []int{1, 2}},
		{"touching start of allocation is free", 9 * 60, 10 * 60, []int{1, 2}},
		{"disjoint afternoon", 14 * 60, 15 * 60, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := freeResourceIDs(rooms, allocations, tt.startMinute, tt.endMinute)
			if len(got) != len(tt.want) {
				t.Fatalf("freeResourceIDs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("freeResourceIDs() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFindOverlappingAllocationNamesTheConflict(t *testing.T) {
	allocations := []entity.ResourceAllocationInterval{
		{ResourceID: 5, AppointmentID: someAppointmentID(), PractitionerName: "Dr. Tanaka", StartTime: "10:00", EndTime: "11:00"},
	}

	conflict := findOverlappingAllocation(allocations, 5, 10*60+30, 11*60+30)
	if conflict == nil {
		t.Fatal("expected an overlapping allocation")
	}
	if conflict.PractitionerName != "Dr. Tanaka" {
		t.Errorf("PractitionerName = %q, want %q", conflict.PractitionerName, "Dr. Tanaka")
	}
	if conflict.AppointmentID != someAppointmentID() {
		t.Errorf("AppointmentID = %s, want %s", conflict.AppointmentID, someAppointmentID())
	}

	if got := findOverlappingAllocation(allocations, 6, 10*60+30, 11*60+30); got != nil {
		t.Errorf("allocation of another resource must not match, got %+v", got)
	}
}

func TestDayCapacityCanFit(t *testing.T) {
	// One treatment room, occupied 10:00-11:00.
	capacity := &dayCapacity{
		requirements: []entity.AppointmentResourceRequirement{
			{ResourceTypeID: 1, Quantity: 1},
		},
		resources: map[int][]entity.Resource{
			1: {{ID: 1, ResourceTypeID: 1, Name: "Room A"}},
		},
		allocations: map[int][]entity.ResourceAllocationInterval{
			1: {{ResourceID: 1, StartTime: "10:00", EndTime: "11:00"}},
		},
	}

	if capacity.canFit(10*60, 10*60+30) {
		t.Error("interval inside the existing allocation must not fit")
	}
	if capacity.canFit(10*60+30, 11*60+30) {
		t.Error("interval overlapping the tail of the allocation must not fit")
	}
	if !capacity.canFit(11*60, 12*60) {
		t.Error("interval starting exactly when the allocation ends must fit")
	}
	if !capacity.canFit(9*60, 10*60) {
		t.Error("interval ending exactly when the allocation starts must fit")
	}
}

func TestDayCapacityCanFitQuantityShortfall(t *testing.T) {
	// Requirement of two units against a single physical resource can never
	// be satisfied, busy or not.
	capacity := &dayCapacity{
		requirements: []entity.AppointmentResourceRequirement{
			{ResourceTypeID: 1, Quantity: 2},
		},
		resources: map[int][]entity.Resource{
			1: {{ID: 1, ResourceTypeID: 1}},
		},
		allocations: map[int][]entity.ResourceAllocationInterval{1: {}},
	}

	if capacity.canFit(9*60, 10*60) {
		t.Error("requirement larger than the fleet must never fit")
	}
}
