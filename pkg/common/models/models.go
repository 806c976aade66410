package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RolePatient   = "patient"
	RoleClinician = "clinician"
)

// Session types
const (
	SessionGaitTrainer   = "gait_trainer"
	SessionSpeechTherapy = "speech_therapy"
	SessionUpperLimb     = "upper_limb"
)

// Baseline assessment types
const (
	AssessmentGait         = "gait"
	AssessmentTapping      = "tapping"
	AssessmentSpeech       = "speech"
	AssessmentBalance      = "balance"
	AssessmentCoordination = "coordination"
	AssessmentCognitive    = "cognitive"
)

// Actor is the authenticated principal supplied by the identity collaborator
// to every core entry point.
type Actor struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// CanAccessPatient reports whether the actor may read a patient's records:
// patients only their own profile, clinicians only assigned patients.
func (a Actor) CanAccessPatient(profile PatientProfile) bool {
	switch a.Role {
	case RolePatient:
		return profile.UserID == a.UserID
	case RoleClinician:
		return profile.AssignedClinicianID != nil && *profile.AssignedClinicianID == a.UserID
	}
	return false
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ClinicianProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	LicenseNumber  string    `json:"license_number,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PatientProfile struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	Condition            string     `json:"condition"`
	BaselineCadence      *float64   `json:"baseline_cadence,omitempty"`
	BaselineTappingSpeed *float64   `json:"baseline_tapping_speed,omitempty"`
	BaselineSpeechRate   *float64   `json:"baseline_speech_rate,omitempty"`
	TargetCadence        *float64   `json:"target_cadence,omitempty"`
	TargetSpeechRate     *float64   `json:"target_speech_rate,omitempty"`
	AssignedClinicianID  *uuid.UUID `json:"assigned_clinician_id,omitempty"`

	StrokeAffectedSide   string `json:"stroke_affected_side,omitempty"`
	StrokeSeverity       string `json:"stroke_severity,omitempty"`
	AphasiaType          string `json:"aphasia_type,omitempty"`
	DysarthriaSeverity   string `json:"dysarthria_severity,omitempty"`
	MotorImpairmentLevel string `json:"motor_impairment_level,omitempty"`
	CognitiveStatus      string `json:"cognitive_status,omitempty"`
	EmotionalStatus      string `json:"emotional_status,omitempty"`
	PreferredMusicGenre  string `json:"preferred_music_genre,omitempty"`
	PreferredBeatSound   string `json:"preferred_beat_sound,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TherapySession struct {
	ID                 uuid.UUID  `json:"id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	SessionType        string     `json:"session_type"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	InitialTempo       float64    `json:"initial_tempo"`
	TargetTempo        float64    `json:"target_tempo"`
	FinalTempo         *float64   `json:"final_tempo,omitempty"`
	DurationSeconds    *int       `json:"duration_seconds,omitempty"`
	AccuracyScore      *float64   `json:"accuracy_score,omitempty"`
	Completed          bool       `json:"completed"`
	Notes              string     `json:"notes,omitempty"`
	AffectedLimb       string     `json:"affected_limb,omitempty"`
	CognitiveLoadLevel int        `json:"cognitive_load_level"`
	GeneratedBeatURL   string     `json:"generated_beat_url,omitempty"`
	TempoOverridden    bool       `json:"tempo_overridden"`
}

// SessionMetric is one accuracy sample. Rows are append-only and never
// mutated; the ordered sequence forms the in-session trend.
type SessionMetric struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	Timestamp      time.Time `json:"timestamp"`
	Tempo          float64   `json:"tempo"`
	SyncAccuracy   float64   `json:"sync_accuracy"`
	AdjustmentMade bool      `json:"adjustment_made"`
}

// BaselineAssessment is immutable once committed; a newer assessment of the
// same type supersedes it logically, never by edit.
type BaselineAssessment struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	AssessmentType string    `json:"assessment_type"`
	MeasuredValue  float64   `json:"measured_value"`
	Notes          string    `json:"notes,omitempty"`
	AssessedBy     uuid.UUID `json:"assessed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// Event bus payload (kafka).
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// Auth / identity requests

type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	UserType       string `json:"user_type"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	LicenseNumber  string `json:"license_number,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string      `json:"access_token"`
	User    User        `json:"user"`
	Profile interface{} `json:"profile,omitempty"`
}

// Patient management requests

type CreatePatientRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Condition string `json:"condition"`

	StrokeAffectedSide   string `json:"stroke_affected_side,omitempty"`
	StrokeSeverity       string `json:"stroke_severity,omitempty"`
	AphasiaType          string `json:"aphasia_type,omitempty"`
	DysarthriaSeverity   string `json:"dysarthria_severity,omitempty"`
	MotorImpairmentLevel string `json:"motor_impairment_level,omitempty"`
	CognitiveStatus      string `json:"cognitive_status,omitempty"`
	EmotionalStatus      string `json:"emotional_status,omitempty"`
	PreferredMusicGenre  string `json:"preferred_music_genre,omitempty"`
	PreferredBeatSound   string `json:"preferred_beat_sound,omitempty"`

	BaselineCadence      *float64 `json:"baseline_cadence,omitempty"`
	BaselineTappingSpeed *float64 `json:"baseline_tapping_speed,omitempty"`
	BaselineSpeechRate   *float64 `json:"baseline_speech_rate,omitempty"`
}

type PatientStats struct {
	TotalSessions int     `json:"total_sessions"`
	AvgAccuracy   float64 `json:"avg_accuracy"`
}

type PatientDetail struct {
	User           User             `json:"user"`
	Profile        PatientProfile   `json:"profile"`
	RecentSessions []TherapySession `json:"recent_sessions"`
	Stats          PatientStats     `json:"stats"`
}

type PatientSummary struct {
	User    User           `json:"user"`
	Profile PatientProfile `json:"profile"`
}

// Session requests

type StartSessionRequest struct {
	SessionType        string  `json:"session_type"`
	InitialTempo       float64 `json:"initial_tempo"`
	TargetTempo        float64 `json:"target_tempo"`
	AffectedLimb       string  `json:"affected_limb,omitempty"`
	CognitiveLoadLevel int     `json:"cognitive_load_level"`
}

type RecordSampleRequest struct {
	CurrentTempo float64 `json:"current_tempo"`
	SyncAccuracy float64 `json:"sync_accuracy"`
}

type SampleResponse struct {
	AdjustedTempo float64 `json:"adjusted_tempo"`
	SyncAccuracy  float64 `json:"sync_accuracy"`
	Adjusted      bool    `json:"adjusted"`
}

type CompleteSessionRequest struct {
	DurationSeconds int     `json:"duration_seconds"`
	FinalTempo      float64 `json:"final_tempo"`
	AccuracyScore   float64 `json:"accuracy_score"`
	Notes           string  `json:"notes,omitempty"`
}

// Assessment requests

type CreateAssessmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id"`
	AssessmentType string    `json:"assessment_type"`
	MeasuredValue  float64   `json:"measured_value"`
	Notes          string    `json:"notes,omitempty"`
}

// ProgressReport is the trend series for client-side charting, recomputed
// fresh on every call.
type ProgressReport struct {
	Dates           []string  `json:"dates"`
	AccuracyScores  []float64 `json:"accuracy_scores"`
	TempoValues     []float64 `json:"tempo_values"`
	BaselineCadence *float64  `json:"baseline_cadence,omitempty"`
	TargetCadence   *float64  `json:"target_cadence,omitempty"`
}
