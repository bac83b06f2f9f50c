package service

import (
	"context"

	"medibook/internal/consults/repository"
	"medibook/internal/consults/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
)

type ConsultService interface {
	Create(ctx context.Context, c *model.Consult) (*model.Consult, error)
	ListByPatient(ctx context.Context, patientID string) ([]*model.Consult, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*model.Consult, error)
}

type consultService struct {
	repo      repository.ConsultRepository
	validator *validator.ConsultValidator
	cfg       *config.Config
}

func NewConsultService(repo repository.ConsultRepository, validator *validator.ConsultValidator, cfg *config.Config) ConsultService {
	return &consultService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *consultService) Create(ctx context.Context, c *model.Consult) (*model.Consult, error) {
	if c.Status == "" {
		c.Status = model.ConsultCompleted
	}
	if err := s.validator.ValidateConsult(c); err != nil {
		return nil, apperrors.Validation("Invalid consult input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperrors.Internal("Failed to create consult", err)
	}

	s.cfg.Log.Info("Consult recorded",
		"consult_id", c.ID,
		"appointment_id", c.AppointmentID,
		"doctor_id", c.DoctorID,
		"patient_id", c.PatientID,
	)
	return c, nil
}

func (s *consultService) ListByPatient(ctx context.Context, patientID string) ([]*model.Consult, error) {
	if patientID == "" {
		return nil, apperrors.InvalidInput("Patient ID cannot be empty")
	}

	consults, err := s.repo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve consults", err)
	}
	if consults == nil {
		consults = []*model.Consult{}
	}
	return consults, nil
}

func (s *consultService) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Consult, error) {
	if doctorID == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	consults, err := s.repo.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve consults", err)
	}
	if consults == nil {
		consults = []*model.Consult{}
	}
	return consults, nil
}
