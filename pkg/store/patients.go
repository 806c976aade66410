package store

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/google/uuid"
)

type patientProfileModel struct {
	ID                   uuid.UUID  `gorm:"primaryKey;column:id"`
	UserID               uuid.UUID  `gorm:"column:user_id;uniqueIndex"`
	Condition            string     `gorm:"column:condition"`
	BaselineCadence      *float64   `gorm:"column:baseline_cadence"`
	BaselineTappingSpeed *float64   `gorm:"column:baseline_tapping_speed"`
	BaselineSpeechRate   *float64   `gorm:"column:baseline_speech_rate"`
	TargetCadence        *float64   `gorm:"column:target_cadence"`
	TargetSpeechRate     *float64   `gorm:"column:target_speech_rate"`
	AssignedClinicianID  *uuid.UUID `gorm:"column:assigned_clinician_id;index"`

	StrokeAffectedSide   string `gorm:"column:stroke_affected_side"`
	StrokeSeverity       string `gorm:"column:stroke_severity"`
	AphasiaType          string `gorm:"column:aphasia_type"`
	DysarthriaSeverity   string `gorm:"column:dysarthria_severity"`
	MotorImpairmentLevel string `gorm:"column:motor_impairment_level"`
	CognitiveStatus      string `gorm:"column:cognitive_status"`
	EmotionalStatus      string `gorm:"column:emotional_status"`
	PreferredMusicGenre  string `gorm:"column:preferred_music_genre"`
	PreferredBeatSound   string `gorm:"column:preferred_beat_sound"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (patientProfileModel) TableName() string { return "patient_profiles" }

type CreatePatientProfileInput struct {
	UserID              uuid.UUID
	Condition           string
	AssignedClinicianID *uuid.UUID

	StrokeAffectedSide   string
	StrokeSeverity       string
	AphasiaType          string
	DysarthriaSeverity   string
	MotorImpairmentLevel string
	CognitiveStatus      string
	EmotionalStatus      string
	PreferredMusicGenre  string
	PreferredBeatSound   string

	BaselineCadence      *float64
	BaselineTappingSpeed *float64
	BaselineSpeechRate   *float64
	TargetCadence        *float64
	TargetSpeechRate     *float64
}

func (r *Repository) CreatePatientProfile(ctx context.Context, input CreatePatientProfileInput) (models.PatientProfile, error) {
	now := time.Now().UTC()
	row := &patientProfileModel{
		ID:                   uuid.New(),
		UserID:               input.UserID,
		Condition:            input.Condition,
		BaselineCadence:      input.BaselineCadence,
		BaselineTappingSpeed: input.BaselineTappingSpeed,
		BaselineSpeechRate:   input.BaselineSpeechRate,
		TargetCadence:        input.TargetCadence,
		TargetSpeechRate:     input.TargetSpeechRate,
		AssignedClinicianID:  input.AssignedClinicianID,
		StrokeAffectedSide:   input.StrokeAffectedSide,
		StrokeSeverity:       input.StrokeSeverity,
		AphasiaType:          input.AphasiaType,
		DysarthriaSeverity:   input.DysarthriaSeverity,
		MotorImpairmentLevel: input.MotorImpairmentLevel,
		CognitiveStatus:      input.CognitiveStatus,
		EmotionalStatus:      input.EmotionalStatus,
		PreferredMusicGenre:  input.PreferredMusicGenre,
		PreferredBeatSound:   input.PreferredBeatSound,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.PatientProfile{}, err
	}
	return buildProfile(row), nil
}

func (r *Repository) ProfileByID(ctx context.Context, id uuid.UUID) (models.PatientProfile, error) {
	var row patientProfileModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.PatientProfile{}, translateNotFound(err)
	}
	return buildProfile(&row), nil
}

func (r *Repository) ProfileByUserID(ctx context.Context, userID uuid.UUID) (models.PatientProfile, error) {
	var row patientProfileModel
	if err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return models.PatientProfile{}, translateNotFound(err)
	}
	return buildProfile(&row), nil
}

func (r *Repository) ListProfilesByClinician(ctx context.Context, clinicianID uuid.UUID) ([]models.PatientProfile, error) {
	var rows []patientProfileModel
	if err := r.db.WithContext(ctx).Where("assigned_clinician_id = ?", clinicianID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return buildProfiles(rows), nil
}

func (r *Repository) ListUnassignedProfiles(ctx context.Context) ([]models.PatientProfile, error) {
	var rows []patientProfileModel
	if err := r.db.WithContext(ctx).Where("assigned_clinician_id IS NULL").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return buildProfiles(rows), nil
}

// UpdateProfileBaselines writes the baseline/target fields mutated by a
// baseline assessment. Target values are always derived, never supplied by
// the caller directly, so only these columns are touched.
func (r *Repository) UpdateProfileBaselines(ctx context.Context, profile models.PatientProfile) error {
	result := r.db.WithContext(ctx).Model(&patientProfileModel{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"baseline_cadence":       profile.BaselineCadence,
		"baseline_tapping_speed": profile.BaselineTappingSpeed,
		"baseline_speech_rate":   profile.BaselineSpeechRate,
		"target_cadence":         profile.TargetCadence,
		"target_speech_rate":     profile.TargetSpeechRate,
		"updated_at":             time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func buildProfiles(rows []patientProfileModel) []models.PatientProfile {
	profiles := make([]models.PatientProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, buildProfile(&rows[i]))
	}
	return profiles
}

func buildProfile(row *patientProfileModel) models.PatientProfile {
	return models.PatientProfile{
		ID:                   row.ID,
		UserID:               row.UserID,
		Condition:            row.Condition,
		BaselineCadence:      row.BaselineCadence,
		BaselineTappingSpeed: row.BaselineTappingSpeed,
		BaselineSpeechRate:   row.BaselineSpeechRate,
		TargetCadence:        row.TargetCadence,
		TargetSpeechRate:     row.TargetSpeechRate,
		AssignedClinicianID:  row.AssignedClinicianID,
		StrokeAffectedSide:   row.StrokeAffectedSide,
		StrokeSeverity:       row.StrokeSeverity,
		AphasiaType:          row.AphasiaType,
		DysarthriaSeverity:   row.DysarthriaSeverity,
		MotorImpairmentLevel: row.MotorImpairmentLevel,
		CognitiveStatus:      row.CognitiveStatus,
		EmotionalStatus:      row.EmotionalStatus,
		PreferredMusicGenre:  row.PreferredMusicGenre,
		PreferredBeatSound:   row.PreferredBeatSound,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}
