package patients

import (
	"math"
	"testing"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIntakeDefaultsForStroke(t *testing.T) {
	b := resolveIntakeBaselines(models.CreatePatientRequest{Condition: "stroke"})

	if b.Cadence == nil || *b.Cadence != 120 {
		t.Fatalf("expected default cadence 120, got %v", b.Cadence)
	}
	if b.TappingSpeed == nil || *b.TappingSpeed != 5 {
		t.Fatalf("expected default tapping 5, got %v", b.TappingSpeed)
	}
	if b.SpeechRate == nil || *b.SpeechRate != 150 {
		t.Fatalf("expected default speech rate 150, got %v", b.SpeechRate)
	}
	if b.TargetCadence == nil || !almostEqual(*b.TargetCadence, 132) {
		t.Fatalf("expected target cadence 132, got %v", b.TargetCadence)
	}
	if b.TargetSpeechRate == nil || !almostEqual(*b.TargetSpeechRate, 172.5) {
		t.Fatalf("expected target speech rate 172.5, got %v", b.TargetSpeechRate)
	}
}

func TestIntakeKeepsSuppliedBaselines(t *testing.T) {
	cadence := 95.0
	b := resolveIntakeBaselines(models.CreatePatientRequest{
		Condition:       "stroke",
		BaselineCadence: &cadence,
	})

	if b.Cadence == nil || *b.Cadence != 95 {
		t.Fatalf("expected supplied cadence 95, got %v", b.Cadence)
	}
	if b.TargetCadence == nil || !almostEqual(*b.TargetCadence, 104.5) {
		t.Fatalf("expected target cadence 104.5, got %v", b.TargetCadence)
	}
	if b.TappingSpeed == nil || *b.TappingSpeed != 5 {
		t.Fatalf("expected default tapping alongside supplied cadence, got %v", b.TappingSpeed)
	}
}

func TestIntakeNoDefaultsForOtherConditions(t *testing.T) {
	b := resolveIntakeBaselines(models.CreatePatientRequest{Condition: "parkinsons"})
	if b.Cadence != nil || b.TappingSpeed != nil || b.SpeechRate != nil {
		t.Fatalf("expected no defaults for non-stroke intake, got %+v", b)
	}
	if b.TargetCadence != nil || b.TargetSpeechRate != nil {
		t.Fatal("expected no derived targets without baselines")
	}
}
