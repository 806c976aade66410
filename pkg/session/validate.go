package session

import (
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

// normalizeStartRequest fills session defaults and rejects out-of-range
// values before the request reaches the planner or storage.
func normalizeStartRequest(req models.StartSessionRequest) (models.StartSessionRequest, error) {
	if req.SessionType == "" {
		req.SessionType = defaultSessionType
	}
	switch req.SessionType {
	case models.SessionGaitTrainer, models.SessionSpeechTherapy, models.SessionUpperLimb:
	default:
		return models.StartSessionRequest{}, errs.Validation("session_type", "unrecognized session type")
	}
	if req.InitialTempo == 0 {
		req.InitialTempo = defaultInitialTempo
	}
	if req.TargetTempo == 0 {
		req.TargetTempo = defaultTargetTempo
	}
	if req.InitialTempo < 0 || req.TargetTempo < 0 {
		return models.StartSessionRequest{}, errs.Validation("tempo", "must be positive")
	}
	if req.CognitiveLoadLevel <= 0 {
		req.CognitiveLoadLevel = 1
	}
	return req, nil
}

func validateSampleRequest(req models.RecordSampleRequest) error {
	if req.CurrentTempo <= 0 {
		return errs.Validation("current_tempo", "must be positive")
	}
	if req.SyncAccuracy < 0 || req.SyncAccuracy > 100 {
		return errs.Validation("sync_accuracy", "must be between 0 and 100")
	}
	return nil
}

func validateCompleteRequest(req models.CompleteSessionRequest) error {
	if req.DurationSeconds < 0 {
		return errs.Validation("duration_seconds", "must not be negative")
	}
	if req.FinalTempo <= 0 {
		return errs.Validation("final_tempo", "must be positive")
	}
	if req.AccuracyScore < 0 || req.AccuracyScore > 100 {
		return errs.Validation("accuracy_score", "must be between 0 and 100")
	}
	return nil
}
