package beat

import (
	"errors"
	"testing"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func strokeProfile() models.PatientProfile {
	return models.PatientProfile{
		Condition:            "stroke",
		StrokeSeverity:       "mild",
		MotorImpairmentLevel: "moderate",
		EmotionalStatus:      "neutral",
		PreferredMusicGenre:  "jazz",
		PreferredBeatSound:   "drum",
	}
}

func TestDeriveOverridesDistantRequestedTempo(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	// gait, mild severity, moderate motor impairment derives 75
	params, err := planner.DeriveTherapyParameters(strokeProfile(), models.SessionGaitTrainer, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.OptimalTempo != 75 {
		t.Fatalf("expected optimal 75, got %g", params.OptimalTempo)
	}
	if !params.Overridden {
		t.Fatal("expected override for requested tempo 15 BPM from optimum")
	}
	if params.InitialTempo != 75 {
		t.Fatalf("expected initial tempo 75, got %g", params.InitialTempo)
	}
	if params.Pattern == nil {
		t.Fatal("expected a pattern for stroke profile")
	}
}

func TestDeriveHonorsRequestInsideTolerance(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	params, err := planner.DeriveTherapyParameters(strokeProfile(), models.SessionGaitTrainer, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Overridden {
		t.Fatal("expected request 5 BPM from optimum to be honored")
	}
	if params.InitialTempo != 70 {
		t.Fatalf("expected initial tempo 70, got %g", params.InitialTempo)
	}
}

func TestDerivePassesThroughNonStrokeProfiles(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	profile := models.PatientProfile{Condition: "parkinsons"}
	params, err := planner.DeriveTherapyParameters(profile, models.SessionGaitTrainer, 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.InitialTempo != 55 || params.Overridden || params.Pattern != nil {
		t.Fatalf("expected passthrough, got %+v", params)
	}
}

func TestOptimalTempoBySessionTypeAndImpairment(t *testing.T) {
	cases := []struct {
		sessionType string
		severity    string
		motor       string
		want        float64
	}{
		{models.SessionGaitTrainer, "", "", 80},
		{models.SessionSpeechTherapy, "", "", 90},
		{models.SessionUpperLimb, "", "", 70},
		{models.SessionGaitTrainer, "moderate", "moderate", 70},
		{models.SessionGaitTrainer, "severe", "severe", 55},
		{models.SessionUpperLimb, "severe", "severe", 45},
	}
	for _, tc := range cases {
		got := OptimalTempo(tc.sessionType, PatientCondition{Severity: tc.severity, MotorImpairment: tc.motor})
		if got != tc.want {
			t.Fatalf("%s severity=%q motor=%q: expected %g, got %g", tc.sessionType, tc.severity, tc.motor, tc.want, got)
		}
	}
}

func TestOptimalTempoNeverLeavesSafetyBounds(t *testing.T) {
	severities := []string{"", "mild", "moderate", "severe"}
	for _, severity := range severities {
		for _, motor := range severities {
			got := OptimalTempo(models.SessionUpperLimb, PatientCondition{Severity: severity, MotorImpairment: motor})
			if got < MinTempo || got > MaxTempo {
				t.Fatalf("severity=%q motor=%q: tempo %g outside [%g, %g]", severity, motor, got, MinTempo, MaxTempo)
			}
		}
	}
}

func TestSelectPatternMapsPreferences(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	pattern, err := planner.SelectPattern(PatientCondition{
		PreferredSound:  "drum",
		PreferredGenre:  "jazz",
		EmotionalStatus: "anxious",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern.Name != "drum-swing-calm" {
		t.Fatalf("expected drum-swing-calm, got %q", pattern.Name)
	}
	if pattern.Instrument != "snare" {
		t.Fatalf("expected snare instrument, got %q", pattern.Instrument)
	}
}

func TestSelectPatternDefaultsForEmptyPreferences(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	pattern, err := planner.SelectPattern(PatientCondition{PreferredSound: "metronome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern.Name != "metronome-plain-steady" {
		t.Fatalf("expected metronome-plain-steady, got %q", pattern.Name)
	}
}

func TestSelectPatternRejectsUnknownEnums(t *testing.T) {
	planner := NewPlanner(DefaultCatalog())
	_, err := planner.SelectPattern(PatientCondition{PreferredSound: "kazoo"})
	var pref InvalidPreferenceError
	if !errors.As(err, &pref) {
		t.Fatalf("expected InvalidPreferenceError, got %v", err)
	}
	if pref.Field != "beat_sound" {
		t.Fatalf("expected beat_sound field, got %q", pref.Field)
	}

	_, err = planner.SelectPattern(PatientCondition{PreferredSound: "drum", PreferredGenre: "polka"})
	if !errors.As(err, &pref) || pref.Field != "music_genre" {
		t.Fatalf("expected music_genre error, got %v", err)
	}
}
