package assessment

import (
	"context"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/kafka"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/google/uuid"
)

type Service struct {
	repo     *store.Repository
	producer *kafka.Producer
}

func NewService(repo *store.Repository, producer *kafka.Producer) *Service {
	return &Service{repo: repo, producer: producer}
}

// RecordAssessment persists an immutable baseline assessment and applies its
// side effects to the owning profile. The assessment row and the profile
// mutation commit in one transaction or not at all.
func (s *Service) RecordAssessment(ctx context.Context, actor models.Actor, req models.CreateAssessmentRequest) (models.BaselineAssessment, error) {
	if actor.Role != models.RoleClinician {
		return models.BaselineAssessment{}, errs.ErrForbidden
	}
	if req.PatientID == uuid.Nil {
		return models.BaselineAssessment{}, errs.Validation("patient_id", "required")
	}
	if req.MeasuredValue < 0 {
		return models.BaselineAssessment{}, errs.Validation("measured_value", "must not be negative")
	}

	var recorded models.BaselineAssessment
	err := s.repo.Transaction(ctx, func(tx *store.Repository) error {
		profile, err := tx.ProfileByID(ctx, req.PatientID)
		if err != nil {
			return err
		}

		note, err := Apply(&profile, req.AssessmentType, req.MeasuredValue, req.Notes)
		if err != nil {
			return err
		}

		recorded, err = tx.CreateAssessment(ctx, store.CreateAssessmentInput{
			PatientID:      profile.ID,
			AssessmentType: req.AssessmentType,
			MeasuredValue:  req.MeasuredValue,
			Notes:          note,
			AssessedBy:     actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := tx.UpdateProfileBaselines(ctx, profile); err != nil {
			return err
		}

		return tx.AppendAuditLog(ctx, store.AuditEntry{
			PatientID: &profile.ID,
			Actor:     actor.UserID,
			Role:      actor.Role,
			Action:    "assessment_recorded",
			Entity:    "assessment",
			EntityID:  recorded.ID.String(),
			Payload: map[string]interface{}{
				"assessment_type": req.AssessmentType,
				"measured_value":  req.MeasuredValue,
			},
		})
	})
	if err != nil {
		return models.BaselineAssessment{}, err
	}

	s.publish(ctx, "assessment.recorded", map[string]interface{}{
		"assessment_id":   recorded.ID.String(),
		"patient_id":      recorded.PatientID.String(),
		"assessment_type": recorded.AssessmentType,
		"measured_value":  recorded.MeasuredValue,
	})

	return recorded, nil
}

func (s *Service) ListAssessments(ctx context.Context, actor models.Actor, patientID uuid.UUID) ([]models.BaselineAssessment, error) {
	profile, err := s.repo.ProfileByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPatient(profile) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListAssessmentsByPatient(ctx, patientID)
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, "assessment-service", data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("event publish failed")
	}
}
