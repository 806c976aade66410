// Package session owns the therapy session lifecycle: creation with a
// derived starting tempo, per-sample tempo adjustment, and exactly-once
// completion.
package session

const (
	// TempoFloor and TempoCeiling are the safety bounds in BPM.
	TempoFloor   = 40.0
	TempoCeiling = 120.0

	lowAccuracyBand  = 70.0
	highAccuracyBand = 90.0

	// Deceleration is twice as fast as acceleration: when synchronization
	// degrades the cue backs off quickly, when it recovers it speeds up
	// gently.
	decelStep = 2.0
	accelStep = 1.0
)

// Adjust computes the next tempo for a synchronization-accuracy sample.
// Accuracy below 70 slows the cue, above 90 speeds it up, and the band in
// between holds steady so the tempo does not chatter around a threshold.
// The returned flag reports a net tempo change: at a boundary that is
// already reached, no further step happens and the flag is false.
//
// Adjust is stateless; identical inputs always produce identical outputs.
func Adjust(currentTempo, syncAccuracy float64) (float64, bool) {
	next := currentTempo
	switch {
	case syncAccuracy < lowAccuracyBand:
		next = currentTempo - decelStep
		if next < TempoFloor {
			next = TempoFloor
		}
	case syncAccuracy > highAccuracyBand:
		next = currentTempo + accelStep
		if next > TempoCeiling {
			next = TempoCeiling
		}
	}
	return next, next != currentTempo
}
