package assessment

import (
	"errors"
	"math"
	"testing"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestApplyGaitSetsBaselineAndTarget(t *testing.T) {
	profile := models.PatientProfile{}
	note, err := Apply(&profile, models.AssessmentGait, 100, "steady walker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note != "steady walker" {
		t.Fatalf("expected notes unchanged, got %q", note)
	}
	if profile.BaselineCadence == nil || *profile.BaselineCadence != 100 {
		t.Fatalf("expected baseline cadence 100, got %v", profile.BaselineCadence)
	}
	if profile.TargetCadence == nil || !almostEqual(*profile.TargetCadence, 110) {
		t.Fatalf("expected target cadence 110, got %v", profile.TargetCadence)
	}
}

func TestApplyTappingSetsBaselineOnly(t *testing.T) {
	profile := models.PatientProfile{}
	if _, err := Apply(&profile, models.AssessmentTapping, 4.5, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.BaselineTappingSpeed == nil || *profile.BaselineTappingSpeed != 4.5 {
		t.Fatalf("expected baseline tapping 4.5, got %v", profile.BaselineTappingSpeed)
	}
	if profile.TargetCadence != nil || profile.TargetSpeechRate != nil {
		t.Fatal("tapping must not derive any target")
	}
}

func TestApplySpeechSetsBaselineAndTarget(t *testing.T) {
	profile := models.PatientProfile{}
	if _, err := Apply(&profile, models.AssessmentSpeech, 140, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.BaselineSpeechRate == nil || *profile.BaselineSpeechRate != 140 {
		t.Fatalf("expected baseline speech rate 140, got %v", profile.BaselineSpeechRate)
	}
	if profile.TargetSpeechRate == nil || !almostEqual(*profile.TargetSpeechRate, 161) {
		t.Fatalf("expected target speech rate 161, got %v", profile.TargetSpeechRate)
	}
}

func TestApplyScaleTypesPrefixNotes(t *testing.T) {
	cases := []struct {
		assessmentType string
		value          float64
		notes          string
		want           string
	}{
		{models.AssessmentBalance, 42, "improving", "Berg Balance Scale Score: 42/56. improving"},
		{models.AssessmentCoordination, 3.2, "left side slower", "Finger-to-Nose Time: 3.2s per repetition. left side slower"},
		{models.AssessmentCognitive, 24, "", "MoCA Score: 24/30. "},
	}
	for _, tc := range cases {
		profile := models.PatientProfile{}
		note, err := Apply(&profile, tc.assessmentType, tc.value, tc.notes)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.assessmentType, err)
		}
		if note != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.assessmentType, tc.want, note)
		}
		if profile.BaselineCadence != nil || profile.BaselineSpeechRate != nil || profile.BaselineTappingSpeed != nil {
			t.Fatalf("%s: scale types must not touch numeric baselines", tc.assessmentType)
		}
	}
}

func TestApplyRejectsUnknownType(t *testing.T) {
	profile := models.PatientProfile{}
	_, err := Apply(&profile, "grip_strength", 10, "")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
