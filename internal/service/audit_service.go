package service

import (
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes the appointment audit trail. Entries are created on the
// caller's transaction handle so they commit or roll back with the change
// they describe.
type AuditService interface {
	LogAppointmentChange(tx *gorm.DB, clinicID, appointmentID uuid.UUID, actorUserID *uuid.UUID, action string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogAppointmentChange(tx *gorm.DB, clinicID, appointmentID uuid.UUID, actorUserID *uuid.UUID, action string, oldValue, newValue interface{}) error {
	entry := &entity.AppointmentAuditLog{
		ClinicID:      clinicID,
		AppointmentID: appointmentID,
		ActorUserID:   actorUserID,
		Action:        action,
		Metadata: entity.JSON{
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(tx, entry); err != nil {
		s.log.Warnf("Failed to create appointment audit log: %+v", err)
		return err
	}

	return nil
}
