// Package store is the persistence collaborator for the therapy core:
// CRUD plus transactional commit/rollback over patients, sessions, metrics
// and assessments. Row models are private; callers only see the shared
// domain structs.
package store

import (
	"context"
	"errors"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&userModel{},
		&clinicianProfileModel{},
		&patientProfileModel{},
		&sessionModel{},
		&metricModel{},
		&assessmentModel{},
		&auditLogModel{},
	)
}

// Transaction runs fn against a transaction-scoped repository. Any error
// returned by fn rolls the whole unit back; nothing partial is persisted.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}
