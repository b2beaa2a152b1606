package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentAuditLog records every state change to an appointment: creation,
// time edits, reassignments and cancellations. Written inside the same
// transaction as the change itself.
type AppointmentAuditLog struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ActorUserID   *uuid.UUID `gorm:"type:uuid;index" json:"actor_user_id,omitempty"`
	Action        string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata      JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AppointmentAuditLog) TableName() string {
	return "appointment_audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions for the appointment lifecycle
const (
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentEdit     = "appointment.edit"
	AuditActionAppointmentReassign = "appointment.reassign"
	AuditActionAppointmentCancel   = "appointment.cancel"
)
