package identity

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/auth"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *auth.JWTManager) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := store.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	jwtManager, err := auth.NewJWTManager("0123456789abcdef0123456789abcdef", "nurobeats", "nurobeats-api", time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	return NewService(repo, jwtManager), jwtManager
}

func registerClinician(t *testing.T, service *Service) models.AuthResponse {
	t.Helper()
	resp, err := service.Register(context.Background(), models.RegisterRequest{
		Username:       "dr_moreno",
		Email:          "moreno@clinic.test",
		Password:       "correct-horse-battery",
		UserType:       models.RoleClinician,
		FirstName:      "Lucia",
		LastName:       "Moreno",
		LicenseNumber:  "LIC-2291",
		Specialization: "neurorehabilitation",
	})
	if err != nil {
		t.Fatalf("register clinician: %v", err)
	}
	return resp
}

func TestRefreshIssuesValidToken(t *testing.T) {
	service, jwtManager := newTestService(t)
	ctx := context.Background()
	registered := registerClinician(t, service)

	actor := models.Actor{UserID: registered.User.ID, Role: registered.User.UserType}
	refreshed, err := service.Refresh(ctx, actor)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Token == "" {
		t.Fatal("refresh returned empty token")
	}

	claims, err := jwtManager.ValidateToken(ctx, refreshed.Token)
	if err != nil {
		t.Fatalf("validate refreshed token: %v", err)
	}
	if claims.UserID != registered.User.ID {
		t.Errorf("token uid = %s, want %s", claims.UserID, registered.User.ID)
	}
	if claims.Role != models.RoleClinician {
		t.Errorf("token role = %q, want %q", claims.Role, models.RoleClinician)
	}
	if refreshed.Profile == nil {
		t.Error("refresh dropped the clinician profile")
	}
}

func TestRefreshUnknownUser(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Refresh(context.Background(), models.Actor{UserID: uuid.New(), Role: models.RolePatient})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _ := newTestService(t)
	registerClinician(t, service)

	_, err := service.Login(context.Background(), models.LoginRequest{
		Username: "dr_moreno",
		Password: "not-the-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
