package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is one scheduled occupation of a practitioner's time on a
// given date. An event either backs exactly one appointment (1:1) or, when no
// appointment references it, represents a manual block entered by the clinic.
type CalendarEvent struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID       uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	Date           time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime      string    `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime        string    `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	// IsCanceled releases the slot in the database-level overlap constraint
	// when the backing appointment is canceled.
	IsCanceled     bool      `gorm:"not null;default:false" json:"is_canceled"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practitioner User         `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Appointment  *Appointment `gorm:"foreignKey:CalendarEventID" json:"appointment,omitempty"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
