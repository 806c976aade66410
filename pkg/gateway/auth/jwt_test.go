package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/google/uuid"
)

const testSecret = "unit-test-signing-secret"

func testUser() models.User {
	return models.User{
		ID:       uuid.New(),
		Username: "avery",
		UserType: models.RolePatient,
	}
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	manager, err := NewJWTManager(testSecret, "nurobeats", "nurobeats-api", time.Hour)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	user := testUser()
	token, err := manager.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != models.RolePatient {
		t.Fatalf("expected patient role, got %q", claims.Role)
	}
	if claims.Username != "avery" {
		t.Fatalf("expected username avery, got %q", claims.Username)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager, err := NewJWTManager(testSecret, "nurobeats", "nurobeats-api", time.Minute)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	issued := time.Now().Add(-2 * time.Hour)
	manager.nowFunc = func() time.Time { return issued }
	token, err := manager.IssueToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	manager.nowFunc = time.Now
	if _, err := manager.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	manager, err := NewJWTManager(testSecret, "nurobeats", "nurobeats-api", time.Hour)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	token, err := manager.IssueToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "forgedsignature"
	if _, err := manager.ValidateToken(context.Background(), tampered); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
}

func TestValidateRejectsForeignIssuer(t *testing.T) {
	issuerA, _ := NewJWTManager(testSecret, "nurobeats", "nurobeats-api", time.Hour)
	issuerB, _ := NewJWTManager(testSecret, "other-system", "nurobeats-api", time.Hour)

	token, err := issuerB.IssueToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := issuerA.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected foreign issuer to fail validation")
	}
}

func TestNewJWTManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewJWTManager("short", "nurobeats", "nurobeats-api", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
}
