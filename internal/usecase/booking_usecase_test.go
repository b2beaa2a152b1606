package usecase

import (
	"errors"
	"testing"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPickLeastLoaded(t *testing.T) {
	idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	idC := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	tests := []struct {
		name       string
		candidates []uuid.UUID
		loads      []entity.PractitionerLoad
		want       uuid.UUID
	}{
		{
			name:       "fewest appointments wins",
			candidates: []uuid.UUID{idA, idB, idC},
			loads: []entity.PractitionerLoad{
				{PractitionerID: idA, Appointments: 3},
				{PractitionerID: idB, Appointments: 1},
				{PractitionerID: idC, Appointments: 2},
			},
			want: idB,
		},
		{
			name:       "missing load rows count as zero",
			candidates: []uuid.UUID{idA, idB},
			loads: []entity.PractitionerLoad{
				{PractitionerID: idA, Appointments: 1},
			},
			want: idB,
		},
		{
			name:       "tie breaks on lowest id regardless of input order",
			candidates: []uuid.UUID{idC, idA, idB},
			loads: []entity.PractitionerLoad{
				{PractitionerID: idA, Appointments: 2},
				{PractitionerID: idB, Appointments: 2},
				{PractitionerID: idC, Appointments: 2},
			},
			want: idA,
		},
		{
			name:       "single candidate",
			candidates: []uuid.UUID{idC},
			loads:      nil,
			want:       idC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickLeastLoaded(tt.candidates, tt.loads)
			if got != tt.want {
				t.Errorf("pickLeastLoaded() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPickLeastLoadedIsDeterministic(t *testing.T) {
	idA := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	idB := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")
	candidates := [][]uuid.UUID{
		{idA, idB},
		{idB, idA},
	}
	for _, c := range candidates {
		if got := pickLeastLoaded(c, nil); got != idA {
			t.Fatalf("pickLeastLoaded(%v) = %s, want %s", c, got, idA)
		}
	}
}

func TestClassifyBookingError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "serialization failure becomes slot conflict",
			err:  &pgconn.PgError{Code: "40001"},
			want: ErrTimeSlotConflict,
		},
		{
			name: "exclusion violation becomes slot conflict",
			err:  &pgconn.PgError{Code: "23P01"},
			want: ErrTimeSlotConflict,
		},
		{
			name: "other postgres errors pass through",
			err:  &pgconn.PgError{Code: "23505"},
			want: nil,
		},
		{
			name: "domain errors pass through",
			err:  ErrOutsideWorkingHours,
			want: ErrOutsideWorkingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyBookingError(tt.err)
			if tt.want == nil {
				if !errors.Is(got, tt.err) {
					t.Errorf("classifyBookingError() = %v, want original error", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyBookingError() = %v, want %v", got, tt.want)
			}
		})
	}
}
