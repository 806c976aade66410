// Package progress aggregates a patient's completed sessions into the trend
// report the dashboard charts. Reports are recomputed on every call; nothing
// is cached or precomputed.
package progress

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/google/uuid"
)

type Service struct {
	repo *store.Repository
}

func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo}
}

// Report builds the trend series for the trailing window. windowDays <= 0
// selects the default 30-day window.
func (s *Service) Report(ctx context.Context, actor models.Actor, patientID uuid.UUID, windowDays int) (models.ProgressReport, error) {
	profile, err := s.repo.ProfileByID(ctx, patientID)
	if err != nil {
		return models.ProgressReport{}, err
	}
	if !actor.CanAccessPatient(profile) {
		return models.ProgressReport{}, errs.ErrForbidden
	}

	since := WindowStart(time.Now().UTC(), windowDays)
	sessions, err := s.repo.CompletedSessionsSince(ctx, patientID, since)
	if err != nil {
		return models.ProgressReport{}, err
	}

	dates, accuracies, tempos := BuildSeries(sessions)
	return models.ProgressReport{
		Dates:           dates,
		AccuracyScores:  accuracies,
		TempoValues:     tempos,
		BaselineCadence: profile.BaselineCadence,
		TargetCadence:   profile.TargetCadence,
	}, nil
}
