package session

import "testing"

func TestAdjustSlowsDownOnLowAccuracy(t *testing.T) {
	next, adjusted := Adjust(80, 65)
	if next != 78 {
		t.Fatalf("expected 78, got %g", next)
	}
	if !adjusted {
		t.Fatal("expected adjustment flag")
	}
}

func TestAdjustSpeedsUpOnHighAccuracy(t *testing.T) {
	next, adjusted := Adjust(80, 95)
	if next != 81 {
		t.Fatalf("expected 81, got %g", next)
	}
	if !adjusted {
		t.Fatal("expected adjustment flag")
	}
}

func TestAdjustDeadBandHoldsTempo(t *testing.T) {
	for _, accuracy := range []float64{70, 75, 82.5, 90} {
		next, adjusted := Adjust(80, accuracy)
		if next != 80 || adjusted {
			t.Fatalf("accuracy %g: expected (80, false), got (%g, %v)", accuracy, next, adjusted)
		}
	}
}

func TestAdjustClampsAtFloor(t *testing.T) {
	next, adjusted := Adjust(41, 50)
	if next != TempoFloor {
		t.Fatalf("expected %g, got %g", TempoFloor, next)
	}
	if !adjusted {
		t.Fatal("expected adjustment flag for partial step to floor")
	}

	next, adjusted = Adjust(TempoFloor, 50)
	if next != TempoFloor || adjusted {
		t.Fatalf("expected (%g, false) at floor, got (%g, %v)", TempoFloor, next, adjusted)
	}
}

func TestAdjustClampsAtCeiling(t *testing.T) {
	next, adjusted := Adjust(119.5, 95)
	if next != TempoCeiling {
		t.Fatalf("expected %g, got %g", TempoCeiling, next)
	}
	if !adjusted {
		t.Fatal("expected adjustment flag for partial step to ceiling")
	}

	next, adjusted = Adjust(TempoCeiling, 95)
	if next != TempoCeiling || adjusted {
		t.Fatalf("expected (%g, false) at ceiling, got (%g, %v)", TempoCeiling, next, adjusted)
	}
}

func TestAdjustIsDeterministic(t *testing.T) {
	for tempo := TempoFloor; tempo <= TempoCeiling; tempo += 0.5 {
		for accuracy := 0.0; accuracy <= 100; accuracy += 5 {
			first, firstFlag := Adjust(tempo, accuracy)
			second, secondFlag := Adjust(tempo, accuracy)
			if first != second || firstFlag != secondFlag {
				t.Fatalf("Adjust(%g, %g) not deterministic", tempo, accuracy)
			}
			if first < TempoFloor || first > TempoCeiling {
				t.Fatalf("Adjust(%g, %g) left range: %g", tempo, accuracy, first)
			}
		}
	}
}
