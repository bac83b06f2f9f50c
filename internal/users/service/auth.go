package service

import (
	"context"
	"errors"

	userserrors "medibook/internal/users/errors"
	"medibook/internal/users/repository"
	"medibook/internal/users/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
	"medibook/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// LoginResponse is the successful login payload: the issued bearer
// token plus the patient's public profile.
type LoginResponse struct {
	Token   string         `json:"token"`
	Patient *model.Patient `json:"patient"`
}

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Patient, error)
	Login(ctx context.Context, req *model.LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, patientID string) (*model.Patient, error)
}

type authService struct {
	repo      repository.PatientRepository
	issuer    *token.Issuer
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewAuthService(repo repository.PatientRepository, issuer *token.Issuer, validator *validator.UserValidator, cfg *config.Config) AuthService {
	return &authService{
		repo:      repo,
		issuer:    issuer,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Patient, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	phone := sanitizer.NormalizePhone(req.Phone)
	if req.Phone != "" && phone == "" {
		return nil, apperrors.InvalidInput("Invalid phone number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	patient := &model.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    phone,
		Address:  sanitizer.TrimAndNormalize(req.Address),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		if errors.Is(err, userserrors.ErrEmailExists) {
			return nil, apperrors.InvalidInput("Email already registered")
		}
		return nil, apperrors.Internal("Failed to register patient", err)
	}

	s.cfg.Log.Info("Patient registered", "patient_id", patient.ID, "email", patient.Email)
	return patient, nil
}

// Login checks credentials and issues a signed token. Unknown email
// and wrong password return the same response so attackers cannot
// probe for registered addresses.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*LoginResponse, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, apperrors.Validation("Invalid login input", map[string]any{"error": err.Error()})
	}

	patient, err := s.repo.FindByEmail(ctx, req.Email)
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

	s.cfg.Log.Info("Patient logged in", "patient_id", patient.ID)
	return &LoginResponse{Token: signed, Patient: patient}, nil
}

func (s *authService) Profile(ctx context.Context, patientID string) (*model.Patient, error) {
	patient, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Patient", patientID)
		}
		return nil, apperrors.Internal("Failed to retrieve patient", err)
	}
	return patient, nil
}
