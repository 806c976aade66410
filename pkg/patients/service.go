// Package patients covers clinician-driven patient management: account and
// profile creation, the clinician dashboard views, and the per-patient audit
// trail.
package patients

import (
	"context"
	"strings"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Starting baselines for stroke patients when intake supplies none. They are
// placeholders until the first baseline assessment replaces them.
const (
	defaultBaselineCadence      = 120.0
	defaultBaselineTappingSpeed = 5.0
	defaultBaselineSpeechRate   = 150.0

	cadenceTargetMultiplier = 1.10
	speechTargetMultiplier  = 1.15
)

type Service struct {
	repo *store.Repository
}

func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo}
}

// CreatePatient provisions the patient account and profile in one
// transaction and assigns the patient to the acting clinician. Target values
// are always derived from baselines, never taken from the request.
func (s *Service) CreatePatient(ctx context.Context, actor models.Actor, req models.CreatePatientRequest) (models.PatientSummary, error) {
	if actor.Role != models.RoleClinician {
		return models.PatientSummary{}, errs.ErrForbidden
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		return models.PatientSummary{}, errs.Validation("username", "required")
	}
	if req.Email == "" {
		return models.PatientSummary{}, errs.Validation("email", "required")
	}
	if len(req.Password) < 8 {
		return models.PatientSummary{}, errs.Validation("password", "must be at least 8 characters")
	}
	if req.Condition == "" {
		req.Condition = "stroke"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PatientSummary{}, err
	}

	baselines := resolveIntakeBaselines(req)

	var summary models.PatientSummary
	err = s.repo.Transaction(ctx, func(tx *store.Repository) error {
		taken, txErr := tx.UsernameTaken(ctx, req.Username)
		if txErr != nil {
			return txErr
		}
		if taken {
			return errs.Validation("username", "already taken")
		}
		taken, txErr = tx.EmailTaken(ctx, req.Email)
		if txErr != nil {
			return txErr
		}
		if taken {
			return errs.Validation("email", "already registered")
		}

		user, txErr := tx.CreateUser(ctx, store.CreateUserInput{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			UserType:     models.RolePatient,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if txErr != nil {
			return txErr
		}

		clinicianID := actor.UserID
		profile, txErr := tx.CreatePatientProfile(ctx, store.CreatePatientProfileInput{
			UserID:               user.ID,
			Condition:            req.Condition,
			AssignedClinicianID:  &clinicianID,
			StrokeAffectedSide:   req.StrokeAffectedSide,
			StrokeSeverity:       req.StrokeSeverity,
			AphasiaType:          req.AphasiaType,
			DysarthriaSeverity:   req.DysarthriaSeverity,
			MotorImpairmentLevel: req.MotorImpairmentLevel,
			CognitiveStatus:      req.CognitiveStatus,
			EmotionalStatus:      req.EmotionalStatus,
			PreferredMusicGenre:  req.PreferredMusicGenre,
			PreferredBeatSound:   req.PreferredBeatSound,
			BaselineCadence:      baselines.Cadence,
			BaselineTappingSpeed: baselines.TappingSpeed,
			BaselineSpeechRate:   baselines.SpeechRate,
			TargetCadence:        baselines.TargetCadence,
			TargetSpeechRate:     baselines.TargetSpeechRate,
		})
		if txErr != nil {
			return txErr
		}

		summary = models.PatientSummary{User: user, Profile: profile}
		return tx.AppendAuditLog(ctx, store.AuditEntry{
			PatientID: &profile.ID,
			Actor:     actor.UserID,
			Role:      actor.Role,
			Action:    "patient_created",
			Entity:    "patient",
			EntityID:  profile.ID.String(),
			Payload: map[string]interface{}{
				"condition": profile.Condition,
				"username":  user.Username,
			},
		})
	})
	if err != nil {
		return models.PatientSummary{}, err
	}
	return summary, nil
}

// Detail returns the dashboard view for one patient: account, profile,
// recent completed sessions, and aggregate stats.
func (s *Service) Detail(ctx context.Context, actor models.Actor, patientID uuid.UUID) (models.PatientDetail, error) {
	profile, err := s.repo.ProfileByID(ctx, patientID)
	if err != nil {
		return models.PatientDetail{}, err
	}
	if !actor.CanAccessPatient(profile) {
		return models.PatientDetail{}, errs.ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, profile.UserID)
	if err != nil {
		return models.PatientDetail{}, err
	}
	recent, err := s.repo.RecentCompletedSessions(ctx, patientID, 5)
	if err != nil {
		return models.PatientDetail{}, err
	}
	stats, err := s.repo.SessionStats(ctx, patientID)
	if err != nil {
		return models.PatientDetail{}, err
	}

	return models.PatientDetail{
		User:           user,
		Profile:        profile,
		RecentSessions: recent,
		Stats:          stats,
	}, nil
}

// ListAssigned returns the acting clinician's caseload.
func (s *Service) ListAssigned(ctx context.Context, actor models.Actor) ([]models.PatientSummary, error) {
	if actor.Role != models.RoleClinician {
		return nil, errs.ErrForbidden
	}
	profiles, err := s.repo.ListProfilesByClinician(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, profiles)
}

// ListUnassigned returns patients without a clinician, for caseload intake.
func (s *Service) ListUnassigned(ctx context.Context, actor models.Actor) ([]models.PatientSummary, error) {
	if actor.Role != models.RoleClinician {
		return nil, errs.ErrForbidden
	}
	profiles, err := s.repo.ListUnassignedProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, profiles)
}

// AuditTrail returns the newest audit entries for a patient.
func (s *Service) AuditTrail(ctx context.Context, actor models.Actor, patientID uuid.UUID, limit int) ([]store.AuditEntry, error) {
	if actor.Role != models.RoleClinician {
		return nil, errs.ErrForbidden
	}
	profile, err := s.repo.ProfileByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPatient(profile) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListAuditLogsByPatient(ctx, patientID, limit)
}

func (s *Service) summarize(ctx context.Context, profiles []models.PatientProfile) ([]models.PatientSummary, error) {
	summaries := make([]models.PatientSummary, 0, len(profiles))
	for _, profile := range profiles {
		user, err := s.repo.GetUserByID(ctx, profile.UserID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.PatientSummary{User: user, Profile: profile})
	}
	return summaries, nil
}

type intakeBaselines struct {
	Cadence          *float64
	TappingSpeed     *float64
	SpeechRate       *float64
	TargetCadence    *float64
	TargetSpeechRate *float64
}

// resolveIntakeBaselines fills missing stroke baselines with the starting
// defaults and derives targets from whatever baselines are present. Other
// conditions get no defaults.
func resolveIntakeBaselines(req models.CreatePatientRequest) intakeBaselines {
	b := intakeBaselines{
		Cadence:      req.BaselineCadence,
		TappingSpeed: req.BaselineTappingSpeed,
		SpeechRate:   req.BaselineSpeechRate,
	}
	if req.Condition == "stroke" {
		if b.Cadence == nil {
			b.Cadence = floatPtr(defaultBaselineCadence)
		}
		if b.TappingSpeed == nil {
			b.TappingSpeed = floatPtr(defaultBaselineTappingSpeed)
		}
		if b.SpeechRate == nil {
			b.SpeechRate = floatPtr(defaultBaselineSpeechRate)
		}
	}
	if b.Cadence != nil {
		b.TargetCadence = floatPtr(*b.Cadence * cadenceTargetMultiplier)
	}
	if b.SpeechRate != nil {
		b.TargetSpeechRate = floatPtr(*b.SpeechRate * speechTargetMultiplier)
	}
	return b
}

func floatPtr(v float64) *float64 { return &v }
