package service

import (
	"context"
	"errors"

	userserrors "medibook/internal/users/errors"
	usersrepo "medibook/internal/users/repository"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
	"medibook/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// BackupLoginResponse matches the primary login payload so gateway
// clients cannot tell which path served them.
type BackupLoginResponse struct {
	Token   string         `json:"token"`
	Patient *model.Patient `json:"patient"`
}

// BackupAuthService is the fallback login path used when the user
// service is down. It reads the same patient store and signs with the
// same secret, so tokens from either path verify identically.
type BackupAuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*BackupLoginResponse, error)
}

type backupAuthService struct {
	patients usersrepo.PatientRepository
	issuer   *token.Issuer
	cfg      *config.Config
}

func NewBackupAuthService(patients usersrepo.PatientRepository, issuer *token.Issuer, cfg *config.Config) BackupAuthService {
	return &backupAuthService{
		patients: patients,
		issuer:   issuer,
		cfg:      cfg,
	}
}

func (s *backupAuthService) Login(ctx context.Context, req *model.LoginRequest) (*BackupLoginResponse, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	patient, err := s.patients.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Internal("Failed to look up patient", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	signed, err := s.issuer.Issue(patient)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Patient logged in via backup path", "patient_id", patient.ID)
	return &BackupLoginResponse{Token: signed, Patient: patient}, nil
}
