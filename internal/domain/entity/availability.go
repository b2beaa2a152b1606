package entity

import (
	"time"

	"github.com/google/uuid"
)

// PractitionerAvailability is one weekly recurring working interval for a
// practitioner: (day_of_week, start, end). Rows for the same practitioner and
// day do not overlap by construction; times are clinic-local "HH:MM" strings.
type PractitionerAvailability struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID       uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	DayOfWeek      int       `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime      string    `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime        string    `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practitioner User `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
}

func (PractitionerAvailability) TableName() string {
	return "practitioner_availabilities"
}
