package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	sessionsStarted     atomic.Int64
	sessionsCompleted   atomic.Int64
	samplesRecorded     atomic.Int64
	tempoAdjustments    atomic.Int64
	assessmentsRecorded atomic.Int64
)

func IncSessionsStarted()   { sessionsStarted.Add(1) }
func IncSessionsCompleted() { sessionsCompleted.Add(1) }
func IncSamplesRecorded()   { samplesRecorded.Add(1) }
func IncTempoAdjustments()  { tempoAdjustments.Add(1) }
func IncAssessments()       { assessmentsRecorded.Add(1) }

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP nurobeats_sessions_started_total Number of therapy sessions started.\n")
	fmt.Fprintf(w, "# TYPE nurobeats_sessions_started_total counter\n")
	fmt.Fprintf(w, "nurobeats_sessions_started_total %d\n", sessionsStarted.Load())

	fmt.Fprintf(w, "# HELP nurobeats_sessions_completed_total Number of therapy sessions completed.\n")
	fmt.Fprintf(w, "# TYPE nurobeats_sessions_completed_total counter\n")
	fmt.Fprintf(w, "nurobeats_sessions_completed_total %d\n", sessionsCompleted.Load())

	fmt.Fprintf(w, "# HELP nurobeats_samples_recorded_total Number of synchronization samples recorded.\n")
	fmt.Fprintf(w, "# TYPE nurobeats_samples_recorded_total counter\n")
	fmt.Fprintf(w, "nurobeats_samples_recorded_total %d\n", samplesRecorded.Load())

	fmt.Fprintf(w, "# HELP nurobeats_tempo_adjustments_total Number of samples that produced a tempo change.\n")
	fmt.Fprintf(w, "# TYPE nurobeats_tempo_adjustments_total counter\n")
	fmt.Fprintf(w, "nurobeats_tempo_adjustments_total %d\n", tempoAdjustments.Load())

	fmt.Fprintf(w, "# HELP nurobeats_assessments_recorded_total Number of baseline assessments recorded.\n")
	fmt.Fprintf(w, "# TYPE nurobeats_assessments_recorded_total counter\n")
	fmt.Fprintf(w, "nurobeats_assessments_recorded_total %d\n", assessmentsRecorded.Load())
}
