package session

import (
	"testing"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func TestNormalizeStartRequestAppliesDefaults(t *testing.T) {
	req, err := normalizeStartRequest(models.StartSessionRequest{})
	if err != nil {
		t.Fatalf("normalize empty request: %v", err)
	}
	if req.SessionType != models.SessionGaitTrainer {
		t.Errorf("session type = %q, want %q", req.SessionType, models.SessionGaitTrainer)
	}
	if req.InitialTempo != defaultInitialTempo {
		t.Errorf("initial tempo = %v, want %v", req.InitialTempo, defaultInitialTempo)
	}
	if req.TargetTempo != defaultTargetTempo {
		t.Errorf("target tempo = %v, want %v", req.TargetTempo, defaultTargetTempo)
	}
	if req.CognitiveLoadLevel != 1 {
		t.Errorf("cognitive load = %d, want 1", req.CognitiveLoadLevel)
	}
}

func TestNormalizeStartRequestKeepsExplicitValues(t *testing.T) {
	req, err := normalizeStartRequest(models.StartSessionRequest{
		SessionType:        models.SessionSpeechTherapy,
		InitialTempo:       85,
		TargetTempo:        100,
		CognitiveLoadLevel: 3,
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if req.SessionType != models.SessionSpeechTherapy || req.InitialTempo != 85 || req.TargetTempo != 100 || req.CognitiveLoadLevel != 3 {
		t.Errorf("explicit values mutated: %+v", req)
	}
}

func TestNormalizeStartRequestRejections(t *testing.T) {
	cases := []struct {
		name string
		req  models.StartSessionRequest
	}{
		{"unknown session type", models.StartSessionRequest{SessionType: "aquatic_therapy"}},
		{"negative initial tempo", models.StartSessionRequest{InitialTempo: -60}},
		{"negative target tempo", models.StartSessionRequest{TargetTempo: -70}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := normalizeStartRequest(tc.req); !errs.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestValidateSampleRequest(t *testing.T) {
	if err := validateSampleRequest(models.RecordSampleRequest{CurrentTempo: 80, SyncAccuracy: 65}); err != nil {
		t.Fatalf("valid sample rejected: %v", err)
	}
	cases := []struct {
		name string
		req  models.RecordSampleRequest
	}{
		{"zero tempo", models.RecordSampleRequest{CurrentTempo: 0, SyncAccuracy: 50}},
		{"negative tempo", models.RecordSampleRequest{CurrentTempo: -80, SyncAccuracy: 50}},
		{"accuracy below range", models.RecordSampleRequest{CurrentTempo: 80, SyncAccuracy: -0.1}},
		{"accuracy above range", models.RecordSampleRequest{CurrentTempo: 80, SyncAccuracy: 100.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateSampleRequest(tc.req); !errs.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestValidateSampleRequestAcceptsBoundaries(t *testing.T) {
	for _, acc := range []float64{0, 100} {
		if err := validateSampleRequest(models.RecordSampleRequest{CurrentTempo: 60, SyncAccuracy: acc}); err != nil {
			t.Errorf("accuracy %v rejected: %v", acc, err)
		}
	}
}

func TestValidateCompleteRequest(t *testing.T) {
	valid := models.CompleteSessionRequest{DurationSeconds: 900, FinalTempo: 72, AccuracyScore: 88}
	if err := validateCompleteRequest(valid); err != nil {
		t.Fatalf("valid completion rejected: %v", err)
	}
	cases := []struct {
		name string
		req  models.CompleteSessionRequest
	}{
		{"negative duration", models.CompleteSessionRequest{DurationSeconds: -1, FinalTempo: 72, AccuracyScore: 88}},
		{"zero final tempo", models.CompleteSessionRequest{DurationSeconds: 900, FinalTempo: 0, AccuracyScore: 88}},
		{"negative final tempo", models.CompleteSessionRequest{DurationSeconds: 900, FinalTempo: -72, AccuracyScore: 88}},
		{"accuracy below range", models.CompleteSessionRequest{DurationSeconds: 900, FinalTempo: 72, AccuracyScore: -5}},
		{"accuracy above range", models.CompleteSessionRequest{DurationSeconds: 900, FinalTempo: 72, AccuracyScore: 101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateCompleteRequest(tc.req); !errs.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}
