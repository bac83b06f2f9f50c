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

// DoctorHandler exposes the doctor and department registry.
type DoctorHandler struct {
	service service.DoctorService
	cfg     *config.Config
}

func NewDoctorHandler(service service.DoctorService, cfg *config.Config) *DoctorHandler {
	return &DoctorHandler{service: service, cfg: cfg}
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/doctors", h.Register)
	router.GET("/doctors", h.List)
	router.GET("/doctors/:doctorId", h.Get)
	router.GET("/doctors/:doctorId/history", h.History)
	router.POST("/departments", h.CreateDepartment)
	router.GET("/departments", h.ListDepartments)
}

func (h *DoctorHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doc model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	created, err := h.service.Register(r.Context(), &doc)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, created))
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doc, err := h.service.Get(r.Context(), ps.ByName("doctorId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, doc))
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, doctors))
}

func (h *DoctorHandler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	history, err := h.service.History(r.Context(), ps.ByName("doctorId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, history))
}

func (h *DoctorHandler) CreateDepartment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var dep model.Department
	if err := json.NewDecoder(r.Body).Decode(&dep); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	created, err := h.service.CreateDepartment(r.Context(), &dep)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, created))
}

func (h *DoctorHandler) ListDepartments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	departments, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, departments))
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error) {
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed", "error", appErr.Err, "message", appErr.Message)
	}
	h.logWriteFailure(pkghttp.WriteError(w, err))
}

func (h *DoctorHandler) logWriteFailure(err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}
