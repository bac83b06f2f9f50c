package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"
)

type mockBookingService struct {
	checkInFn         func(ctx context.Context, req *model.CheckInRequest) (*model.Availability, error)
	getAvailabilityFn func(ctx context.Context, doctorID, date string) (*model.Availability, error)
	bookFn            func(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error)
	cancelFn          func(ctx context.Context, doctorID, date, slotID string) error
	listByPatientFn   func(ctx context.Context, patientID string) ([]*model.Appointment, error)
	listByDoctorFn    func(ctx context.Context, doctorID string) ([]*model.Appointment, error)
}

func (m *mockBookingService) CheckIn(ctx context.Context, req *model.CheckInRequest) (*model.Availability, error) {
	return m.checkInFn(ctx, req)
}

func (m *mockBookingService) GetAvailability(ctx context.Context, doctorID, date string) (*model.Availability, error) {
	return m.getAvailabilityFn(ctx, doctorID, date)
}

func (m *mockBookingService) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	return m.bookFn(ctx, req)
}

func (m *mockBookingService) Cancel(ctx context.Context, doctorID, date, slotID string) error {
	return m.cancelFn(ctx, doctorID, date, slotID)
}

func (m *mockBookingService) ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return m.listByPatientFn(ctx, patientID)
}

func (m *mockBookingService) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Appointment, error) {
	return m.listByDoctorFn(ctx, doctorID)
}

func newBookingRouter(svc *mockBookingService) *httprouter.Router {
	cfg := &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
	router := httprouter.New()
	NewBookingHandler(svc, cfg).RegisterRoutes(router)
	return router
}

func TestGetAvailabilityRoute(t *testing.T) {
	svc := &mockBookingService{
		getAvailabilityFn: func(_ context.Context, doctorID, date string) (*model.Availability, error) {
			if doctorID != "64a1f0c2e4b0a1b2c3d4e5f6" || date != "2026-09-14" {
				t.Errorf("wrong params: %s %s", doctorID, date)
			}
			return &model.Availability{DoctorID: doctorID, Date: date, Slots: []model.Slot{}}, nil
		},
	}
	router := newBookingRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/64a1f0c2e4b0a1b2c3d4e5f6/2026-09-14", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data model.Availability `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.DoctorID != "64a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("wrong payload: %+v", body.Data)
	}
}

func TestGetAvailabilityNotFoundStatus(t *testing.T) {
	svc := &mockBookingService{
		getAvailabilityFn: func(context.Context, string, string) (*model.Availability, error) {
			return nil, apperrors.NotFound("No availability found for this doctor on this date")
		},
	}
	router := newBookingRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/64a1f0c2e4b0a1b2c3d4e5f6/2026-09-14", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBookRouteCreated(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(_ context.Context, req *model.BookingRequest) (*model.Appointment, error) {
			return &model.Appointment{
				ID:        "64a1f0c2e4b0a1b2c3d4e5f9",
				DoctorID:  req.DoctorID,
				Date:      req.Date,
				Time:      req.Time,
				PatientID: req.PatientID,
				Status:    model.AppointmentActive,
			}, nil
		},
	}
	router := newBookingRouter(svc)

	body := `{"doctorId":"64a1f0c2e4b0a1b2c3d4e5f6","date":"2026-09-14","time":"10:30","patientId":"64a1f0c2e4b0a1b2c3d4e5f7"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookappointment", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBookRouteSlotTakenStatus(t *testing.T) {
	svc := &mockBookingService{
		bookFn: func(context.Context, *model.BookingRequest) (*model.Appointment, error) {
			return nil, apperrors.SlotUnavailable("Slot not available")
		},
	}
	router := newBookingRouter(svc)

	body := `{"doctorId":"64a1f0c2e4b0a1b2c3d4e5f6","date":"2026-09-14","time":"10:30","patientId":"64a1f0c2e4b0a1b2c3d4e5f7"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookappointment", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBookRouteRejectsBadJSON(t *testing.T) {
	router := newBookingRouter(&mockBookingService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookappointment", strings.NewReader("{broken")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCancelRoute(t *testing.T) {
	var gotDoctor, gotDate, gotSlot string
	svc := &mockBookingService{
		cancelFn: func(_ context.Context, doctorID, date, slotID string) error {
			gotDoctor, gotDate, gotSlot = doctorID, date, slotID
			return nil
		},
	}
	router := newBookingRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/deleteappointment/64a1f0c2e4b0a1b2c3d4e5f6/2026-09-14/slot-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotDoctor != "64a1f0c2e4b0a1b2c3d4e5f6" || gotDate != "2026-09-14" || gotSlot != "slot-1" {
		t.Errorf("wrong params: %s %s %s", gotDoctor, gotDate, gotSlot)
	}
}

func TestMyAppointmentsRoute(t *testing.T) {
	svc := &mockBookingService{
		listByPatientFn: func(_ context.Context, patientID string) ([]*model.Appointment, error) {
			return []*model.Appointment{{ID: "64a1f0c2e4b0a1b2c3d4e5f9", PatientID: patientID}}, nil
		},
	}
	router := newBookingRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/myappointments/64a1f0c2e4b0a1b2c3d4e5f7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
