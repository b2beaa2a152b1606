package repository

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestFindBusyByPractitionersAndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalendarEventRepository()

	clinicID := uuid.New()
	practitionerID := uuid.New()
	appointmentID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"event_id", "practitioner_id", "start_time", "end_time", "buffer_minutes", "appointment_id"}).
		AddRow(int64(10), practitionerID, "09:00:00", "09:30:00", 15, appointmentID).
		AddRow(int64(11), practitionerID, "12:00:00", "13:00:00", 0, nil)

	mock.ExpectQuery(`SELECT .+ FROM calendar_events ce LEFT JOIN appointments a ON a\.calendar_event_id = ce\.id LEFT JOIN appointment_types at ON at\.id = a\.appointment_type_id WHERE .+`).
		WithArgs(clinicID, practitionerID, date, string(entity.AppointmentStatusConfirmed)).
		WillReturnRows(rows)

	busy, err := repo.FindBusyByPractitionersAndDate(db, clinicID, []uuid.UUID{practitionerID}, date, nil)
	if err != nil {
		t.Fatalf("FindBusyByPractitionersAndDate() error = %v", err)
	}
	if len(busy) != 2 {
		t.Fatalf("got %d busy events, want 2", len(busy))
	}

	if busy[0].BufferMinutes != 15 {
		t.Errorf("appointment buffer = %d, want 15", busy[0].BufferMinutes)
	}
	if busy[0].AppointmentID == nil || *busy[0].AppointmentID != appointmentID {
		t.Errorf("first row should carry the appointment id")
	}
	// A manual block has no appointment and no buffer.
	if busy[1].AppointmentID != nil {
		t.Errorf("manual block must have a nil appointment id")
	}
	if busy[1].BufferMinutes != 0 {
		t.Errorf("manual block buffer = %d, want 0", busy[1].BufferMinutes)
	}

	expectationsMet(t, mock)
}

func TestFindBusyByPractitionersAndDateEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalendarEventRepository()

	busy, err := repo.FindBusyByPractitionersAndDate(db, uuid.New(), nil, time.Now(), nil)
	if err != nil {
		t.Fatalf("FindBusyByPractitionersAndDate() error = %v", err)
	}
	if len(busy) != 0 {
		t.Errorf("expected no rows for empty practitioner list")
	}

	expectationsMet(t, mock)
}

func TestFindBusyByPractitionersAndDateExcludesEvent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalendarEventRepository()

	clinicID := uuid.New()
	practitionerID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	excludeID := int64(42)

	mock.ExpectQuery(`SELECT .+ FROM calendar_events ce .+ ce\.id <> .+`).
		WithArgs(clinicID, practitionerID, date, string(entity.AppointmentStatusConfirmed), excludeID).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "practitioner_id", "start_time", "end_time", "buffer_minutes", "appointment_id"}))

	busy, err := repo.FindBusyByPractitionersAndDate(db, clinicID, []uuid.UUID{practitionerID}, date, &excludeID)
	if err != nil {
		t.Fatalf("FindBusyByPractitionersAndDate() error = %v", err)
	}
	if len(busy) != 0 {
		t.Errorf("expected no rows, got %d", len(busy))
	}

	expectationsMet(t, mock)
}
