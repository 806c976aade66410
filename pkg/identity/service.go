// Package identity handles account registration, credential login, and the
// authenticated self view. Clinician SSO via the hospital identity provider
// lands here too, producing the same local token as credential login.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/errs"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
	"github.com/Aditya-J07/Nuro-Beats/pkg/gateway/auth"
	"github.com/Aditya-J07/Nuro-Beats/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so login failures do not leak which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	repo *store.Repository
	jwt  *auth.JWTManager
}

func NewService(repo *store.Repository, jwt *auth.JWTManager) *Service {
	return &Service{repo: repo, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		return models.AuthResponse{}, errs.Validation("username", "required")
	}
	if req.Email == "" {
		return models.AuthResponse{}, errs.Validation("email", "required")
	}
	if len(req.Password) < 8 {
		return models.AuthResponse{}, errs.Validation("password", "must be at least 8 characters")
	}
	switch req.UserType {
	case models.RolePatient, models.RoleClinician:
	default:
		return models.AuthResponse{}, errs.Validation("user_type", "must be patient or clinician")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	var user models.User
	var profile interface{}
	err = s.repo.Transaction(ctx, func(tx *store.Repository) error {
		taken, txErr := tx.UsernameTaken(ctx, req.Username)
		if txErr != nil {
			return txErr
		}
		if taken {
			return errs.Validation("username", "already taken")
		}
		taken, txErr = tx.EmailTaken(ctx, req.Email)
		if txErr != nil {
			return txErr
		}
		if taken {
			return errs.Validation("email", "already registered")
		}

		user, txErr = tx.CreateUser(ctx, store.CreateUserInput{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			UserType:     req.UserType,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if txErr != nil {
			return txErr
		}

		if req.UserType == models.RoleClinician {
			clinician, txErr := tx.CreateClinicianProfile(ctx, store.CreateClinicianProfileInput{
				UserID:         user.ID,
				LicenseNumber:  req.LicenseNumber,
				Specialization: req.Specialization,
			})
			if txErr != nil {
				return txErr
			}
			profile = clinician
		}
		return nil
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	token, err := s.jwt.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user, Profile: profile}, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return models.AuthResponse{}, errs.Validation("credentials", "username and password are required")
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return models.AuthResponse{}, ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}
	hash, err := s.repo.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.jwt.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user, Profile: s.loadProfile(ctx, user)}, nil
}

// Me returns the authenticated user's account and role profile.
func (s *Service) Me(ctx context.Context, actor models.Actor) (models.AuthResponse, error) {
	user, err := s.repo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{User: user, Profile: s.loadProfile(ctx, user)}, nil
}

// Refresh issues a fresh token for an already-authenticated actor. The
// new token carries the user's current role, so a role change takes
// effect at the next refresh rather than lingering until expiry.
func (s *Service) Refresh(ctx context.Context, actor models.Actor) (models.AuthResponse, error) {
	user, err := s.repo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	token, err := s.jwt.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user, Profile: s.loadProfile(ctx, user)}, nil
}

// LoginSSO completes clinician single sign-on: the provider identity must
// match an existing clinician account by email. SSO never provisions
// accounts.
func (s *Service) LoginSSO(ctx context.Context, info *auth.UserInfo) (models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, info.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if user.UserType != models.RoleClinician {
		return models.AuthResponse{}, errs.ErrForbidden
	}
	token, err := s.jwt.IssueToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user, Profile: s.loadProfile(ctx, user)}, nil
}

// loadProfile attaches the role profile when one exists. A missing profile
// is not an error; patients registered directly have none until a clinician
// completes intake.
func (s *Service) loadProfile(ctx context.Context, user models.User) interface{} {
	switch user.UserType {
	case models.RoleClinician:
		if clinician, err := s.repo.ClinicianProfileByUserID(ctx, user.ID); err == nil {
			return clinician
		}
	case models.RolePatient:
		if patient, err := s.repo.ProfileByUserID(ctx, user.ID); err == nil {
			return patient
		}
	}
	return nil
}
