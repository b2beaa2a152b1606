package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking restriction type values stored per clinic.
const (
	BookingRestrictionNone         = "none"
	BookingRestrictionMinimumHours = "minimum_hours_required"
	// BookingRestrictionSameDayDeprecated is the retired same-day rule. Rows
	// carrying it are interpreted as minimum-hours with a 24h default; new
	// writes always use one of the values above.
	BookingRestrictionSameDayDeprecated = "same_day_disallowed"
)

// Clinic is one tenant. Every scheduling query is scoped by clinic id, and
// every instant is interpreted in the clinic's own timezone.
type Clinic struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                     string    `gorm:"type:varchar(255);not null" json:"name"`
	Timezone                 string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	BookingRestrictionType   string    `gorm:"type:varchar(50);not null;default:'none'" json:"booking_restriction_type"`
	MinimumBookingHoursAhead int       `gorm:"not null;default:0" json:"minimum_booking_hours_ahead"`
	MaxBookingWindowDays     int       `gorm:"not null;default:0" json:"max_booking_window_days"`
	Settings                 JSON      `gorm:"type:jsonb" json:"settings,omitempty"`
	CreatedAt                time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}

// Location resolves the clinic's IANA timezone, falling back to UTC when the
// stored name does not load.
func (c *Clinic) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
