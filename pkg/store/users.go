package store

import (
	"context"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/google/uuid"
)

type userModel struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	UserType     string    `gorm:"column:user_type"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

type clinicianProfileModel struct {
	ID             uuid.UUID `gorm:"primaryKey;column:id"`
	UserID         uuid.UUID `gorm:"column:user_id;uniqueIndex"`
	LicenseNumber  string    `gorm:"column:license_number"`
	Specialization string    `gorm:"column:specialization"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (clinicianProfileModel) TableName() string { return "clinician_profiles" }

type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	UserType     string
	FirstName    string
	LastName     string
}

func (r *Repository) CreateUser(ctx context.Context, input CreateUserInput) (models.User, error) {
	row := &userModel{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		UserType:     input.UserType,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.User{}, err
	}
	return buildUser(row), nil
}

func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var row userModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.User{}, translateNotFound(err)
	}
	return buildUser(&row), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var row userModel
	if err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		return models.User{}, translateNotFound(err)
	}
	return buildUser(&row), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var row userModel
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return models.User{}, translateNotFound(err)
	}
	return buildUser(&row), nil
}

func (r *Repository) GetPasswordHash(ctx context.Context, userID uuid.UUID) (string, error) {
	var row userModel
	if err := r.db.WithContext(ctx).Select("password_hash").First(&row, "id = ?", userID).Error; err != nil {
		return "", translateNotFound(err)
	}
	return row.PasswordHash, nil
}

func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type CreateClinicianProfileInput struct {
	UserID         uuid.UUID
	LicenseNumber  string
	Specialization string
}

func (r *Repository) CreateClinicianProfile(ctx context.Context, input CreateClinicianProfileInput) (models.ClinicianProfile, error) {
	row := &clinicianProfileModel{
		ID:             uuid.New(),
		UserID:         input.UserID,
		LicenseNumber:  input.LicenseNumber,
		Specialization: input.Specialization,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.ClinicianProfile{}, err
	}
	return models.ClinicianProfile{
		ID:             row.ID,
		UserID:         row.UserID,
		LicenseNumber:  row.LicenseNumber,
		Specialization: row.Specialization,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func (r *Repository) ClinicianProfileByUserID(ctx context.Context, userID uuid.UUID) (models.ClinicianProfile, error) {
	var row clinicianProfileModel
	if err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return models.ClinicianProfile{}, translateNotFound(err)
	}
	return models.ClinicianProfile{
		ID:             row.ID,
		UserID:         row.UserID,
		LicenseNumber:  row.LicenseNumber,
		Specialization: row.Specialization,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func buildUser(row *userModel) models.User {
	return models.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		UserType:  row.UserType,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		CreatedAt: row.CreatedAt,
	}
}
