package store

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/google/uuid"
)

type sessionModel struct {
	ID                 uuid.UUID  `gorm:"primaryKey;column:id"`
	PatientID          uuid.UUID  `gorm:"column:patient_id;index"`
	SessionType        string     `gorm:"column:session_type"`
	StartTime          time.Time  `gorm:"column:start_time;index"`
	EndTime            *time.Time `gorm:"column:end_time"`
	InitialTempo       float64    `gorm:"column:initial_tempo"`
	TargetTempo        float64    `gorm:"column:target_tempo"`
	FinalTempo         *float64   `gorm:"column:final_tempo"`
	DurationSeconds    *int       `gorm:"column:duration_seconds"`
	AccuracyScore      *float64   `gorm:"column:accuracy_score"`
	Completed          bool       `gorm:"column:completed"`
	Notes              string     `gorm:"column:notes;type:text"`
	AffectedLimb       string     `gorm:"column:affected_limb"`
	CognitiveLoadLevel int        `gorm:"column:cognitive_load_level"`
	GeneratedBeatURL   string     `gorm:"column:generated_beat_url"`
	TempoOverridden    bool       `gorm:"column:tempo_overridden"`
}

func (sessionModel) TableName() string { return "therapy_sessions" }

type metricModel struct {
	ID             uuid.UUID `gorm:"primaryKey;column:id"`
	SessionID      uuid.UUID `gorm:"column:session_id;index"`
	Timestamp      time.Time `gorm:"column:timestamp;index"`
	Tempo          float64   `gorm:"column:tempo"`
	SyncAccuracy   float64   `gorm:"column:sync_accuracy"`
	AdjustmentMade bool      `gorm:"column:adjustment_made"`
}

func (metricModel) TableName() string { return "session_metrics" }

type CreateSessionInput struct {
	PatientID          uuid.UUID
	SessionType        string
	StartTime          time.Time
	InitialTempo       float64
	TargetTempo        float64
	AffectedLimb       string
	CognitiveLoadLevel int
	GeneratedBeatURL   string
	TempoOverridden    bool
}

func (r *Repository) CreateSession(ctx context.Context, input CreateSessionInput) (models.TherapySession, error) {
	row := &sessionModel{
		ID:                 uuid.New(),
		PatientID:          input.PatientID,
		SessionType:        input.SessionType,
		StartTime:          input.StartTime,
		InitialTempo:       input.InitialTempo,
		TargetTempo:        input.TargetTempo,
		Completed:          false,
		AffectedLimb:       input.AffectedLimb,
		CognitiveLoadLevel: input.CognitiveLoadLevel,
		GeneratedBeatURL:   input.GeneratedBeatURL,
		TempoOverridden:    input.TempoOverridden,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.TherapySession{}, err
	}
	return buildSession(row), nil
}

func (r *Repository) GetSession(ctx context.Context, id uuid.UUID) (models.TherapySession, error) {
	var row sessionModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.TherapySession{}, translateNotFound(err)
	}
	return buildSession(&row), nil
}

type AppendMetricInput struct {
	SessionID      uuid.UUID
	Timestamp      time.Time
	Tempo          float64
	SyncAccuracy   float64
	AdjustmentMade bool
}

func (r *Repository) AppendMetric(ctx context.Context, input AppendMetricInput) (models.SessionMetric, error) {
	row := &metricModel{
		ID:             uuid.New(),
		SessionID:      input.SessionID,
		Timestamp:      input.Timestamp,
		Tempo:          input.Tempo,
		SyncAccuracy:   input.SyncAccuracy,
		AdjustmentMade: input.AdjustmentMade,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.SessionMetric{}, err
	}
	return models.SessionMetric{
		ID:             row.ID,
		SessionID:      row.SessionID,
		Timestamp:      row.Timestamp,
		Tempo:          row.Tempo,
		SyncAccuracy:   row.SyncAccuracy,
		AdjustmentMade: row.AdjustmentMade,
	}, nil
}

// AppendActiveMetric writes a sample only while the session is still
// active. The guarded no-op update inside the transaction takes the
// session row lock, so a completion landing between the check and the
// insert cannot leave a metric on a completed session.
func (r *Repository) AppendActiveMetric(ctx context.Context, input AppendMetricInput) (models.SessionMetric, error) {
	var metric models.SessionMetric
	err := r.Transaction(ctx, func(tx *Repository) error {
		result := tx.db.WithContext(ctx).Model(&sessionModel{}).
			Where("id = ? AND completed = ?", input.SessionID, false).
			Update("completed", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var row sessionModel
			if err := tx.db.WithContext(ctx).First(&row, "id = ?", input.SessionID).Error; err != nil {
				return translateNotFound(err)
			}
			return errs.ErrInvalidState
		}
		var txErr error
		metric, txErr = tx.AppendMetric(ctx, input)
		return txErr
	})
	if err != nil {
		return models.SessionMetric{}, err
	}
	return metric, nil
}

func (r *Repository) ListMetrics(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMetric, error) {
	var rows []metricModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("timestamp ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	metrics := make([]models.SessionMetric, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, models.SessionMetric{
			ID:             row.ID,
			SessionID:      row.SessionID,
			Timestamp:      row.Timestamp,
			Tempo:          row.Tempo,
			SyncAccuracy:   row.SyncAccuracy,
			AdjustmentMade: row.AdjustmentMade,
		})
	}
	return metrics, nil
}

type CompleteSessionInput struct {
	SessionID       uuid.UUID
	EndTime         time.Time
	DurationSeconds int
	FinalTempo      float64
	AccuracyScore   float64
	Notes           string
}

// CompleteSession flips the session to completed exactly once. The predicate
// on completed = false serializes concurrent callers at the row level: only
// the first UPDATE matches, every later one sees zero affected rows and gets
// ErrInvalidState rather than silently overwriting a recorded outcome.
func (r *Repository) CompleteSession(ctx context.Context, input CompleteSessionInput) (models.TherapySession, error) {
	result := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("id = ? AND completed = ?", input.SessionID, false).
		Updates(map[string]interface{}{
			"completed":        true,
			"end_time":         input.EndTime,
			"duration_seconds": input.DurationSeconds,
			"final_tempo":      input.FinalTempo,
			"accuracy_score":   input.AccuracyScore,
			"notes":            input.Notes,
		})
	if result.Error != nil {
		return models.TherapySession{}, result.Error
	}
	if result.RowsAffected == 0 {
		var row sessionModel
		if err := r.db.WithContext(ctx).First(&row, "id = ?", input.SessionID).Error; err != nil {
			return models.TherapySession{}, translateNotFound(err)
		}
		return models.TherapySession{}, errs.ErrInvalidState
	}
	return r.GetSession(ctx, input.SessionID)
}

// CompletedSessionsSince returns completed sessions for a patient whose
// start time falls inside the trailing window, oldest first.
func (r *Repository) CompletedSessionsSince(ctx context.Context, patientID uuid.UUID, since time.Time) ([]models.TherapySession, error) {
	var rows []sessionModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND completed = ? AND start_time >= ?", patientID, true, since).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return buildSessions(rows), nil
}

func (r *Repository) RecentCompletedSessions(ctx context.Context, patientID uuid.UUID, limit int) ([]models.TherapySession, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	var rows []sessionModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND completed = ?", patientID, true).
		Order("start_time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return buildSessions(rows), nil
}

func (r *Repository) SessionStats(ctx context.Context, patientID uuid.UUID) (models.PatientStats, error) {
	var stats struct {
		Total int
		Avg   *float64
	}
	query := `SELECT COUNT(*) AS total, AVG(accuracy_score) AS avg FROM therapy_sessions WHERE patient_id = ? AND completed = true`
	if err := r.db.WithContext(ctx).Raw(query, patientID).Scan(&stats).Error; err != nil {
		return models.PatientStats{}, err
	}
	avg := 0.0
	if stats.Avg != nil {
		avg = *stats.Avg
	}
	return models.PatientStats{TotalSessions: stats.Total, AvgAccuracy: avg}, nil
}

func buildSessions(rows []sessionModel) []models.TherapySession {
	sessions := make([]models.TherapySession, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, buildSession(&rows[i]))
	}
	return sessions
}

func buildSession(row *sessionModel) models.TherapySession {
	return models.TherapySession{
		ID:                 row.ID,
		PatientID:          row.PatientID,
		SessionType:        row.SessionType,
		StartTime:          row.StartTime,
		EndTime:            row.EndTime,
		InitialTempo:       row.InitialTempo,
		TargetTempo:        row.TargetTempo,
		FinalTempo:         row.FinalTempo,
		DurationSeconds:    row.DurationSeconds,
		AccuracyScore:      row.AccuracyScore,
		Completed:          row.Completed,
		Notes:              row.Notes,
		AffectedLimb:       row.AffectedLimb,
		CognitiveLoadLevel: row.CognitiveLoadLevel,
		GeneratedBeatURL:   row.GeneratedBeatURL,
		TempoOverridden:    row.TempoOverridden,
	}
}
