package progress

import (
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

// DefaultWindowDays is the trailing window a report covers when the caller
// does not ask for another.
const DefaultWindowDays = 30

// BuildSeries folds completed sessions into the parallel chart arrays. The
// input is expected oldest-first; incomplete sessions are skipped, a missing
// accuracy charts as 0, and a missing final tempo falls back to the starting
// tempo so every index has a point in all three arrays.
func BuildSeries(sessions []models.TherapySession) ([]string, []float64, []float64) {
	dates := make([]string, 0, len(sessions))
	accuracies := make([]float64, 0, len(sessions))
	tempos := make([]float64, 0, len(sessions))

	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}
		accuracy := 0.0
		if sess.AccuracyScore != nil {
			accuracy = *sess.AccuracyScore
		}
		tempo := sess.InitialTempo
		if sess.FinalTempo != nil {
			tempo = *sess.FinalTempo
		}
		dates = append(dates, sess.StartTime.Format("2006-01-02"))
		accuracies = append(accuracies, accuracy)
		tempos = append(tempos, tempo)
	}

	return dates, accuracies, tempos
}

// WindowStart returns the inclusive lower bound of a trailing window ending
// at now.
func WindowStart(now time.Time, windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return now.AddDate(0, 0, -windowDays)
}
