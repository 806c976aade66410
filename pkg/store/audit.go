package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type auditLogModel struct {
	ID        int64          `gorm:"primaryKey;column:id"`
	PatientID *uuid.UUID     `gorm:"column:patient_id;index"`
	Actor     uuid.UUID      `gorm:"column:actor"`
	Role      string         `gorm:"column:role"`
	Action    string         `gorm:"column:action"`
	Entity    string         `gorm:"column:entity"`
	EntityID  string         `gorm:"column:entity_id"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	CreatedAt time.Time      `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string { return "therapy_audit_logs" }

type AuditEntry struct {
	PatientID *uuid.UUID             `json:"patient_id,omitempty"`
	Actor     uuid.UUID              `json:"actor"`
	Role      string                 `json:"role,omitempty"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity,omitempty"`
	EntityID  string                 `json:"entity_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (r *Repository) AppendAuditLog(ctx context.Context, entry AuditEntry) error {
	payload, _ := json.Marshal(entry.Payload)
	row := &auditLogModel{
		PatientID: entry.PatientID,
		Actor:     entry.Actor,
		Role:      entry.Role,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Payload:   datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository) ListAuditLogsByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []auditLogModel
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := AuditEntry{
			PatientID: row.PatientID,
			Actor:     row.Actor,
			Role:      row.Role,
			Action:    row.Action,
			Entity:    row.Entity,
			EntityID:  row.EntityID,
			CreatedAt: row.CreatedAt,
		}
		if len(row.Payload) > 0 {
			var payload map[string]interface{}
			_ = json.Unmarshal(row.Payload, &payload)
			entry.Payload = payload
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
