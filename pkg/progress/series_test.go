package progress

import (
	"testing"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func completedSession(start time.Time, accuracy, finalTempo float64) models.TherapySession {
	return models.TherapySession{
		StartTime:     start,
		InitialTempo:  60,
		Completed:     true,
		AccuracyScore: &accuracy,
		FinalTempo:    &finalTempo,
	}
}

func TestBuildSeriesKeepsChronologicalOrder(t *testing.T) {
	day := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	sessions := []models.TherapySession{
		completedSession(day, 72, 62),
		completedSession(day.AddDate(0, 0, 3), 81, 64),
		completedSession(day.AddDate(0, 0, 7), 88, 66),
	}

	dates, accuracies, tempos := BuildSeries(sessions)
	if len(dates) != 3 || len(accuracies) != 3 || len(tempos) != 3 {
		t.Fatalf("expected 3 points per series, got %d/%d/%d", len(dates), len(accuracies), len(tempos))
	}
	if dates[0] != "2026-08-01" || dates[2] != "2026-08-08" {
		t.Fatalf("unexpected dates %v", dates)
	}
	if accuracies[0] != 72 || accuracies[2] != 88 {
		t.Fatalf("unexpected accuracies %v", accuracies)
	}
	if tempos[1] != 64 {
		t.Fatalf("unexpected tempos %v", tempos)
	}
}

func TestBuildSeriesSkipsIncompleteSessions(t *testing.T) {
	day := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	accuracy := 75.0
	sessions := []models.TherapySession{
		{StartTime: day, InitialTempo: 60, Completed: false, AccuracyScore: &accuracy},
		completedSession(day.AddDate(0, 0, 1), 80, 63),
	}

	dates, _, _ := BuildSeries(sessions)
	if len(dates) != 1 {
		t.Fatalf("expected only the completed session, got %d points", len(dates))
	}
	if dates[0] != "2026-08-11" {
		t.Fatalf("unexpected date %q", dates[0])
	}
}

func TestBuildSeriesFallsBackToInitialTempo(t *testing.T) {
	accuracy := 85.0
	sessions := []models.TherapySession{
		{
			StartTime:     time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC),
			InitialTempo:  58,
			Completed:     true,
			AccuracyScore: &accuracy,
		},
	}

	_, _, tempos := BuildSeries(sessions)
	if len(tempos) != 1 || tempos[0] != 58 {
		t.Fatalf("expected fallback to initial tempo 58, got %v", tempos)
	}
}

func TestBuildSeriesChartsMissingAccuracyAsZero(t *testing.T) {
	finalTempo := 64.0
	sessions := []models.TherapySession{
		{
			StartTime:    time.Date(2026, 8, 13, 9, 0, 0, 0, time.UTC),
			InitialTempo: 60,
			Completed:    true,
			FinalTempo:   &finalTempo,
		},
	}

	dates, accuracies, _ := BuildSeries(sessions)
	if len(dates) != 1 {
		t.Fatalf("expected 1 point, got %d", len(dates))
	}
	if accuracies[0] != 0 {
		t.Fatalf("expected accuracy 0, got %g", accuracies[0])
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	since := WindowStart(now, 30)
	if since != now.AddDate(0, 0, -30) {
		t.Fatalf("unexpected window start %v", since)
	}
	if WindowStart(now, 0) != now.AddDate(0, 0, -DefaultWindowDays) {
		t.Fatal("expected default window for non-positive days")
	}
}
