package session

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/beat"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/kafka"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/google/uuid"
)

const (
	defaultSessionType  = models.SessionGaitTrainer
	defaultInitialTempo = 60.0
	defaultTargetTempo  = 70.0
)

type Service struct {
	repo     *store.Repository
	planner  *beat.Planner
	renderer beat.Renderer
	producer *kafka.Producer
}

func NewService(repo *store.Repository, planner *beat.Planner, renderer beat.Renderer, producer *kafka.Producer) *Service {
	return &Service{repo: repo, planner: planner, renderer: renderer, producer: producer}
}

// Start creates a session in the active state. For stroke patients the
// starting tempo runs through profile translation and a beat reference is
// rendered; for other conditions the requested values pass through.
func (s *Service) Start(ctx context.Context, actor models.Actor, req models.StartSessionRequest) (models.TherapySession, error) {
	if actor.Role != models.RolePatient {
		return models.TherapySession{}, errs.ErrForbidden
	}

	profile, err := s.repo.ProfileByUserID(ctx, actor.UserID)
	if err != nil {
		return models.TherapySession{}, err
	}

	req, err = normalizeStartRequest(req)
	if err != nil {
		return models.TherapySession{}, err
	}

	params, err := s.planner.DeriveTherapyParameters(profile, req.SessionType, req.InitialTempo)
	if err != nil {
		return models.TherapySession{}, err
	}

	beatURL := ""
	if params.Pattern != nil && s.renderer != nil {
		cond := beat.ConditionFromProfile(profile)
		beatURL, err = s.renderer.Render(ctx, req.SessionType, params.InitialTempo, cond, *params.Pattern)
		if err != nil {
			// The cue player falls back to its local click track when no
			// reference is attached, so a render failure does not block
			// the session.
			logger.Log.WithError(err).WithField("patient_id", profile.ID).Warn("beat render failed")
			beatURL = ""
		}
	}

	var created models.TherapySession
	err = s.repo.Transaction(ctx, func(tx *store.Repository) error {
		var txErr error
		created, txErr = tx.CreateSession(ctx, store.CreateSessionInput{
			PatientID:          profile.ID,
			SessionType:        req.SessionType,
			StartTime:          time.Now().UTC(),
			InitialTempo:       params.InitialTempo,
			TargetTempo:        req.TargetTempo,
			AffectedLimb:       req.AffectedLimb,
			CognitiveLoadLevel: req.CognitiveLoadLevel,
			GeneratedBeatURL:   beatURL,
			TempoOverridden:    params.Overridden,
		})
		if txErr != nil {
			return txErr
		}
		return tx.AppendAuditLog(ctx, store.AuditEntry{
			PatientID: &profile.ID,
			Actor:     actor.UserID,
			Role:      actor.Role,
			Action:    "session_started",
			Entity:    "session",
			EntityID:  created.ID.String(),
			Payload: map[string]interface{}{
				"session_type":     created.SessionType,
				"initial_tempo":    created.InitialTempo,
				"tempo_overridden": created.TempoOverridden,
			},
		})
	})
	if err != nil {
		return models.TherapySession{}, err
	}

	s.publish(ctx, "session.started", map[string]interface{}{
		"session_id":       created.ID.String(),
		"patient_id":       created.PatientID.String(),
		"session_type":     created.SessionType,
		"initial_tempo":    created.InitialTempo,
		"tempo_overridden": created.TempoOverridden,
	})

	return created, nil
}

// RecordSample appends one synchronization-accuracy sample and returns the
// adjusted tempo. The session row itself is not mutated; tempo is tracked
// client-side per sample and only the metric trail is read back.
func (s *Service) RecordSample(ctx context.Context, actor models.Actor, sessionID uuid.UUID, req models.RecordSampleRequest) (models.SampleResponse, error) {
	sess, err := s.authorizePatientSession(ctx, actor, sessionID)
	if err != nil {
		return models.SampleResponse{}, err
	}
	if err := validateSampleRequest(req); err != nil {
		return models.SampleResponse{}, err
	}

	adjusted, changed := Adjust(req.CurrentTempo, req.SyncAccuracy)

	// The store re-checks the active state under the session row lock, so
	// a completion racing this call cannot gain a late metric.
	_, err = s.repo.AppendActiveMetric(ctx, store.AppendMetricInput{
		SessionID:      sess.ID,
		Timestamp:      time.Now().UTC(),
		Tempo:          req.CurrentTempo,
		SyncAccuracy:   req.SyncAccuracy,
		AdjustmentMade: changed,
	})
	if err != nil {
		return models.SampleResponse{}, err
	}

	s.publish(ctx, "session.sample", map[string]interface{}{
		"session_id":     sess.ID.String(),
		"tempo":          req.CurrentTempo,
		"sync_accuracy":  req.SyncAccuracy,
		"adjusted":       changed,
		"adjusted_tempo": adjusted,
	})

	return models.SampleResponse{
		AdjustedTempo: adjusted,
		SyncAccuracy:  req.SyncAccuracy,
		Adjusted:      changed,
	}, nil
}

// Complete transitions the session to its terminal state exactly once. A
// second attempt fails with the invalid-state kind and leaves the recorded
// outcome untouched.
func (s *Service) Complete(ctx context.Context, actor models.Actor, sessionID uuid.UUID, req models.CompleteSessionRequest) (models.TherapySession, error) {
	sess, err := s.authorizePatientSession(ctx, actor, sessionID)
	if err != nil {
		return models.TherapySession{}, err
	}

	if err := validateCompleteRequest(req); err != nil {
		return models.TherapySession{}, err
	}

	var completed models.TherapySession
	err = s.repo.Transaction(ctx, func(tx *store.Repository) error {
		var txErr error
		completed, txErr = tx.CompleteSession(ctx, store.CompleteSessionInput{
			SessionID:       sess.ID,
			EndTime:         time.Now().UTC(),
			DurationSeconds: req.DurationSeconds,
			FinalTempo:      req.FinalTempo,
			AccuracyScore:   req.AccuracyScore,
			Notes:           req.Notes,
		})
		if txErr != nil {
			return txErr
		}
		return tx.AppendAuditLog(ctx, store.AuditEntry{
			PatientID: &sess.PatientID,
			Actor:     actor.UserID,
			Role:      actor.Role,
			Action:    "session_completed",
			Entity:    "session",
			EntityID:  sess.ID.String(),
			Payload: map[string]interface{}{
				"final_tempo":    req.FinalTempo,
				"accuracy_score": req.AccuracyScore,
				"duration":       req.DurationSeconds,
			},
		})
	})
	if err != nil {
		return models.TherapySession{}, err
	}

	s.publish(ctx, "session.completed", map[string]interface{}{
		"session_id":     completed.ID.String(),
		"patient_id":     completed.PatientID.String(),
		"final_tempo":    req.FinalTempo,
		"accuracy_score": req.AccuracyScore,
	})

	return completed, nil
}

func (s *Service) Get(ctx context.Context, actor models.Actor, sessionID uuid.UUID) (models.TherapySession, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return models.TherapySession{}, err
	}
	profile, err := s.repo.ProfileByID(ctx, sess.PatientID)
	if err != nil {
		return models.TherapySession{}, err
	}
	if !actor.CanAccessPatient(profile) {
		return models.TherapySession{}, errs.ErrForbidden
	}
	return sess, nil
}

func (s *Service) Metrics(ctx context.Context, actor models.Actor, sessionID uuid.UUID) ([]models.SessionMetric, error) {
	if _, err := s.Get(ctx, actor, sessionID); err != nil {
		return nil, err
	}
	return s.repo.ListMetrics(ctx, sessionID)
}

// authorizePatientSession loads the session and checks the acting patient
// owns it. Clinicians never drive a live session.
func (s *Service) authorizePatientSession(ctx context.Context, actor models.Actor, sessionID uuid.UUID) (models.TherapySession, error) {
	if actor.Role != models.RolePatient {
		return models.TherapySession{}, errs.ErrForbidden
	}
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return models.TherapySession{}, err
	}
	profile, err := s.repo.ProfileByID(ctx, sess.PatientID)
	if err != nil {
		return models.TherapySession{}, err
	}
	if profile.UserID != actor.UserID {
		return models.TherapySession{}, errs.ErrForbidden
	}
	return sess, nil
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, eventType, "session-service", data); err != nil {
		logger.Log.WithError(err).WithField("event_type", eventType).Warn("event publish failed")
	}
}
