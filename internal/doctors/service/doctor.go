package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/internal/doctors/repository"
	"medibook/internal/doctors/validator"
	"medibook/pkg/client"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorService interface {
	Register(ctx context.Context, doc *model.Doctor) (*model.Doctor, error)
	Get(ctx context.Context, id string) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	CreateDepartment(ctx context.Context, dep *model.Department) (*model.Department, error)
	ListDepartments(ctx context.Context) ([]*model.Department, error)
	History(ctx context.Context, doctorID string) (*model.DoctorHistory, error)
}

type doctorService struct {
	doctorRepo    repository.DoctorRepository
	apptRepo      repository.AppointmentRepository
	consultClient *client.HttpClient
	validator     *validator.DoctorValidator
	cfg           *config.Config
}

func NewDoctorService(
	doctorRepo repository.DoctorRepository,
	apptRepo repository.AppointmentRepository,
	consultClient *client.HttpClient,
	validator *validator.DoctorValidator,
	cfg *config.Config,
) DoctorService {
	return &doctorService{
		doctorRepo:    doctorRepo,
		apptRepo:      apptRepo,
		consultClient: consultClient,
		validator:     validator,
		cfg:           cfg,
	}
}

// Register creates a doctor inside their department's roster. The
// create and the roster update run in one transaction so a doctor
// never exists outside a department.
func (s *doctorService) Register(ctx context.Context, doc *model.Doctor) (*model.Doctor, error) {
	doc.Name = sanitizer.NormalizeName(doc.Name)
	doc.Specialization = sanitizer.TrimAndNormalize(doc.Specialization)
	doc.DepartmentName = sanitizer.TrimAndNormalize(doc.DepartmentName)

	if err := s.validator.ValidateDoctor(doc); err != nil {
		return nil, apperrors.Validation("Invalid doctor input", map[string]any{"error": err.Error()})
	}

	dep, err := s.doctorRepo.FindDepartmentByName(ctx, doc.DepartmentName)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrDepartmentNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("Department %q not found", doc.DepartmentName))
		}
		return nil, apperrors.Internal("Failed to look up department", err)
	}

	if _, err := s.doctorRepo.FindByNameAndSpecialization(ctx, doc.Name, doc.Specialization); err == nil {
		return nil, apperrors.InvalidInput("Doctor with this name and specialization already exists")
	} else if !errors.Is(err, doctorserrors.ErrDoctorNotFound) {
		return nil, apperrors.Internal("Failed to check for existing doctor", err)
	}

	err = s.doctorRepo.ExecuteTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.doctorRepo.Create(sc, doc); err != nil {
			return err
		}
		return s.doctorRepo.AddDoctorToDepartment(sc, dep.ID, doc.ID)
	})
	if err != nil {
		if errors.Is(err, doctorserrors.ErrDoctorExists) {
			return nil, apperrors.InvalidInput("Doctor with this name and specialization already exists")
		}
		return nil, apperrors.Internal("Failed to register doctor", err)
	}

	s.cfg.Log.Info("Doctor registered",
		"doctor_id", doc.ID,
		"name", doc.Name,
		"department", doc.DepartmentName,
	)
	return doc, nil
}

func (s *doctorService) Get(ctx context.Context, id string) (*model.Doctor, error) {
	doc, err := s.doctorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrDoctorNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", id)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid doctor ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve doctor", err)
	}
	return doc, nil
}

func (s *doctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.doctorRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}
	return doctors, nil
}

func (s *doctorService) CreateDepartment(ctx context.Context, dep *model.Department) (*model.Department, error) {
	dep.Name = sanitizer.TrimAndNormalize(dep.Name)

	if err := s.validator.ValidateDepartment(dep); err != nil {
		return nil, apperrors.Validation("Invalid department input", map[string]any{"error": err.Error()})
	}

	if _, err := s.doctorRepo.FindDepartmentByName(ctx, dep.Name); err == nil {
		return nil, apperrors.InvalidInput("Department already exists")
	} else if !errors.Is(err, doctorserrors.ErrDepartmentNotFound) {
		return nil, apperrors.Internal("Failed to check for existing department", err)
	}

	if err := s.doctorRepo.CreateDepartment(ctx, dep); err != nil {
		if errors.Is(err, doctorserrors.ErrAlreadyExists) {
			return nil, apperrors.InvalidInput("Department already exists")
		}
		return nil, apperrors.Internal("Failed to create department", err)
	}

	s.cfg.Log.Info("Department created", "department_id", dep.ID, "name", dep.Name)
	return dep, nil
}

func (s *doctorService) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.doctorRepo.FindAllDepartments(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve departments", err)
	}
	return departments, nil
}

// History merges local appointment records with consult notes fetched
// from the consult service. A consult service outage degrades the
// response to appointments only instead of failing it.
func (s *doctorService) History(ctx context.Context, doctorID string) (*model.DoctorHistory, error) {
	doc, err := s.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.apptRepo.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve appointments", err)
	}

	history := &model.DoctorHistory{
		Doctor:       doc,
		Appointments: appointments,
		Consults:     []*model.Consult{},
	}

	resp, err := s.consultClient.GET(ctx, "/api/consults/doctor/"+doctorID)
	if err != nil {
		s.cfg.Log.Warn("Consult service unreachable, returning partial history",
			"doctor_id", doctorID,
			"error", err,
		)
		return history, nil
	}
	if resp.StatusCode == http.StatusOK {
		var payload struct {
			Data []*model.Consult `json:"data"`
		}
		if err := resp.DecodeJSON(&payload); err != nil {
			s.cfg.Log.Warn("Failed to decode consult history", "doctor_id", doctorID, "error", err)
			return history, nil
		}
		history.Consults = payload.Data
	}

	return history, nil
}
