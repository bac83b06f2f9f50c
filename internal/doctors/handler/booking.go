package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medibook/internal/doctors/service"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	pkghttp "medibook/pkg/http"
	"medibook/pkg/model"
)

// BookingHandler exposes availability and appointment operations.
type BookingHandler struct {
	service service.BookingService
	cfg     *config.Config
}

func NewBookingHandler(service service.BookingService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{service: service, cfg: cfg}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/checkin", h.CheckIn)
	router.GET("/availability/:doctorId/:date", h.GetAvailability)
	router.POST("/bookappointment", h.Book)
	router.DELETE("/deleteappointment/:doctorId/:date/:slotId", h.Cancel)
	router.GET("/myappointments/:patientId", h.MyAppointments)
	router.GET("/doctorappointments/:doctorId", h.DoctorAppointments)
}

func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	av, err := h.service.CheckIn(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, av))
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	av, err := h.service.GetAvailability(r.Context(), ps.ByName("doctorId"), ps.ByName("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, av))
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	appt, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, appt))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.service.Cancel(r.Context(), ps.ByName("doctorId"), ps.ByName("date"), ps.ByName("slotId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, map[string]string{"message": "Appointment cancelled"}))
}

func (h *BookingHandler) MyAppointments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	appointments, err := h.service.ListByPatient(r.Context(), ps.ByName("patientId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, appointments))
}

func (h *BookingHandler) DoctorAppointments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	appointments, err := h.service.ListByDoctor(r.Context(), ps.ByName("doctorId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, appointments))
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed", "error", appErr.Err, "message", appErr.Message)
	}
	h.logWriteFailure(pkghttp.WriteError(w, err))
}

func (h *BookingHandler) logWriteFailure(err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}
