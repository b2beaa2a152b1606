package repository

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestUpdateStatusGuardsConfirmedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET .+ WHERE id = .+ AND status = .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.UpdateStatus(db, id, entity.AppointmentStatusCanceledByPatient)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	expectationsMet(t, mock)
}

func TestUpdateStatusAlreadyCanceled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments" SET .+ WHERE id = .+ AND status = .+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.UpdateStatus(db, uuid.New(), entity.AppointmentStatusCanceledByClinic)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for a row that is no longer confirmed", affected)
	}

	expectationsMet(t, mock)
}

func TestCountConfirmedByPractitionersAndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	clinicID := uuid.New()
	busyID := uuid.New()
	idleID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"practitioner_id", "appointments"}).
		AddRow(busyID, 4).
		AddRow(idleID, 1)

	mock.ExpectQuery(`SELECT a\.practitioner_id, COUNT\(\*\) AS appointments FROM appointments a JOIN calendar_events ce ON ce\.id = a\.calendar_event_id WHERE .+ GROUP BY .+`).
		WithArgs(clinicID, busyID, idleID, string(entity.AppointmentStatusConfirmed), date).
		WillReturnRows(rows)

	loads, err := repo.CountConfirmedByPractitionersAndDate(db, clinicID, []uuid.UUID{busyID, idleID}, date)
	if err != nil {
		t.Fatalf("CountConfirmedByPractitionersAndDate() error = %v", err)
	}
	if len(loads) != 2 {
		t.Fatalf("got %d load rows, want 2", len(loads))
	}
	if loads[0].PractitionerID != busyID || loads[0].Appointments != 4 {
		t.Errorf("first load row = %+v", loads[0])
	}

	expectationsMet(t, mock)
}
