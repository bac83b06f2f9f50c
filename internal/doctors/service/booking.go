package service

import (
	"context"
	"errors"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/internal/doctors/repository"
	"medibook/internal/doctors/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/events"
	"medibook/pkg/model"
)

type BookingService interface {
	CheckIn(ctx context.Context, req *model.CheckInRequest) (*model.Availability, error)
	GetAvailability(ctx context.Context, doctorID, date string) (*model.Availability, error)
	Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, doctorID, date, slotID string) error
	ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error)
}

type bookingService struct {
	availRepo  repository.AvailabilityRepository
	apptRepo   repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	publisher  events.Publisher
	validator  *validator.DoctorValidator
	cfg        *config.Config
}

func NewBookingService(
	availRepo repository.AvailabilityRepository,
	apptRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	publisher events.Publisher,
	validator *validator.DoctorValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		availRepo:  availRepo,
		apptRepo:   apptRepo,
		doctorRepo: doctorRepo,
		publisher:  publisher,
		validator:  validator,
		cfg:        cfg,
	}
}

// CheckIn opens a doctor's availability for a date with a fresh slot
// set. Creating the same (doctor, date) twice is a business error, not
// a fault: the stored record is untouched and the caller gets a 400.
func (s *bookingService) CheckIn(ctx context.Context, req *model.CheckInRequest) (*model.Availability, error) {
	if err := s.validator.ValidateCheckIn(req); err != nil {
		return nil, apperrors.Validation("Invalid check-in input", map[string]any{"error": err.Error()})
	}

	if _, err := s.doctorRepo.FindByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorserrors.ErrDoctorNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", req.DoctorID)
		}
		if errors.Is(err, doctorserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid doctor ID format")
		}
		return nil, apperrors.Internal("Failed to verify doctor", err)
	}

	av := &model.Availability{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Slots:    GenerateSlots(s.cfg.SlotStartOfDay, s.cfg.SlotEndOfDay, s.cfg.SlotDuration),
	}

	if err := s.availRepo.Create(ctx, av); err != nil {
		if errors.Is(err, doctorserrors.ErrAlreadyExists) {
			return nil, apperrors.InvalidInput("Availability already exists for this doctor on this date")
		}
		return nil, apperrors.Internal("Failed to create availability", err)
	}

	s.cfg.Log.Info("Availability created",
		"doctor_id", av.DoctorID,
		"date", av.Date,
		"slots", len(av.Slots),
	)
	return av, nil
}

func (s *bookingService) GetAvailability(ctx context.Context, doctorID, date string) (*model.Availability, error) {
	av, err := s.availRepo.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("No availability found for this doctor on this date")
		}
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}
	return av, nil
}

// Book reserves an open slot for a patient. The appointment record is
// created first, then the slot is claimed with an atomic conditional
// update; when the claim loses (slot unknown or already booked) the
// appointment is removed again so no orphan survives a lost race.
func (s *bookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	if err := s.validator.ValidateBooking(req); err != nil {
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	if _, err := s.availRepo.FindByDoctorAndDate(ctx, req.DoctorID, req.Date); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Doctor not available on this date")
		}
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	appt := &model.Appointment{
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		PatientID: req.PatientID,
		Status:    model.AppointmentActive,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, apperrors.Internal("Failed to create appointment", err)
	}

	if err := s.availRepo.BookSlot(ctx, req.DoctorID, req.Date, req.Time, req.PatientID); err != nil {
		if deleteErr := s.apptRepo.Delete(ctx, appt.ID); deleteErr != nil {
			s.cfg.Log.Error("Failed to remove appointment after lost slot claim",
				"appointment_id", appt.ID,
				"error", deleteErr,
			)
		}
		if errors.Is(err, doctorserrors.ErrSlotUnavailable) {
			return nil, apperrors.SlotUnavailable("Slot not available")
		}
		return nil, apperrors.Internal("Failed to book slot", err)
	}

	if err := s.publisher.Publish(ctx, events.BookedEvent(appt)); err != nil {
		s.cfg.Log.Warn("Failed to publish booked event",
			"appointment_id", appt.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Appointment booked",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"date", appt.Date,
		"time", appt.Time,
		"patient_id", appt.PatientID,
	)
	return appt, nil
}

// Cancel reopens a booked slot and transitions the matching appointment
// to cancelled, keeping the two records reconciled. Reopened slots are
// fully bookable again.
func (s *bookingService) Cancel(ctx context.Context, doctorID, date, slotID string) error {
	av, err := s.availRepo.FindByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return apperrors.NotFound("No availability found for this doctor on this date")
		}
		return apperrors.Internal("Failed to retrieve availability", err)
	}

	slot := av.FindSlotByID(slotID)
	if slot == nil {
		return apperrors.NotFoundWithID("Slot", slotID)
	}

	if err := s.availRepo.ReleaseSlot(ctx, doctorID, date, slotID); err != nil {
		if errors.Is(err, doctorserrors.ErrSlotNotFound) {
			return apperrors.NotFoundWithID("Slot", slotID)
		}
		return apperrors.Internal("Failed to release slot", err)
	}

	appt, err := s.apptRepo.FindActiveBySlot(ctx, doctorID, date, slot.Time)
	if err != nil {
		if !errors.Is(err, doctorserrors.ErrAppointmentNotFound) {
			return apperrors.Internal("Failed to look up appointment", err)
		}
		// Slot was never booked; nothing to reconcile.
		s.cfg.Log.Info("Slot released", "doctor_id", doctorID, "date", date, "slot_id", slotID)
		return nil
	}

	if err := s.apptRepo.UpdateStatus(ctx, appt.ID, model.AppointmentCancelled); err != nil {
		return apperrors.Internal("Failed to cancel appointment", err)
	}

	if err := s.publisher.Publish(ctx, events.CancelledEvent(appt, slotID)); err != nil {
		s.cfg.Log.Warn("Failed to publish cancelled event",
			"appointment_id", appt.ID,
			"error", err,
		)
	}

	s.cfg.Log.Info("Appointment cancelled",
		"appointment_id", appt.ID,
		"doctor_id", doctorID,
		"date", date,
		"slot_id", slotID,
	)
	return nil
}

func (s *bookingService) ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	if patientID == "" {
		return nil, apperrors.InvalidInput("Patient ID cannot be empty")
	}

	appointments, err := s.apptRepo.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve appointments", err)
	}
	if len(appointments) == 0 {
		return nil, apperrors.NotFound("No appointments found for this patient")
	}
	return appointments, nil
}

func (s *bookingService) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	if doctorID == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	}

	appointments, err := s.apptRepo.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve appointments", err)
	}
	if len(appointments) == 0 {
		return nil, apperrors.NotFound("No appointments found for this doctor")
	}
	return appointments, nil
}
