package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Practitioners are
// users with the practitioner role; the scheduling core only ever reads them.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic         Clinic                     `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Role           Role                       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Availabilities []PractitionerAvailability `gorm:"foreignKey:PractitionerID" json:"availabilities,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsPractitioner reports whether this user can be booked.
func (u *User) IsPractitioner() bool {
	return u.RoleID == RoleIDPractitioner
}
