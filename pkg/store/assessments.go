package store

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/google/uuid"
)

type assessmentModel struct {
	ID             uuid.UUID `gorm:"primaryKey;column:id"`
	PatientID      uuid.UUID `gorm:"column:patient_id;index"`
	AssessmentType string    `gorm:"column:assessment_type"`
	MeasuredValue  float64   `gorm:"column:measured_value"`
	Notes          string    `gorm:"column:notes;type:text"`
	AssessedBy     uuid.UUID `gorm:"column:assessed_by"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (assessmentModel) TableName() string { return "baseline_assessments" }

type CreateAssessmentInput struct {
	PatientID      uuid.UUID
	AssessmentType string
	MeasuredValue  float64
	Notes          string
	AssessedBy     uuid.UUID
}

func (r *Repository) CreateAssessment(ctx context.Context, input CreateAssessmentInput) (models.BaselineAssessment, error) {
	row := &assessmentModel{
		ID:             uuid.New(),
		PatientID:      input.PatientID,
		AssessmentType: input.AssessmentType,
		MeasuredValue:  input.MeasuredValue,
		Notes:          input.Notes,
		AssessedBy:     input.AssessedBy,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.BaselineAssessment{}, err
	}
	return buildAssessment(row), nil
}

func (r *Repository) ListAssessmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]models.BaselineAssessment, error) {
	var rows []assessmentModel
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	assessments := make([]models.BaselineAssessment, 0, len(rows))
	for i := range rows {
		assessments = append(assessments, buildAssessment(&rows[i]))
	}
	return assessments, nil
}

func buildAssessment(row *assessmentModel) models.BaselineAssessment {
	return models.BaselineAssessment{
		ID:             row.ID,
		PatientID:      row.PatientID,
		AssessmentType: row.AssessmentType,
		MeasuredValue:  row.MeasuredValue,
		Notes:          row.Notes,
		AssessedBy:     row.AssessedBy,
		CreatedAt:      row.CreatedAt,
	}
}
