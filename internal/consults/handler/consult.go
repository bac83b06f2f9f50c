package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medibook/internal/consults/service"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	pkghttp "medibook/pkg/http"
	"medibook/pkg/model"
)

// ConsultHandler serves consult records plus the backup login
// endpoint the gateway falls back to.
type ConsultHandler struct {
	service service.ConsultService
	backup  service.BackupAuthService
	cfg     *config.Config
}

func NewConsultHandler(service service.ConsultService, backup service.BackupAuthService, cfg *config.Config) *ConsultHandler {
	return &ConsultHandler{service: service, backup: backup, cfg: cfg}
}

func (h *ConsultHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/consults", h.Create)
	router.GET("/api/consults/patient/:patientId", h.ByPatient)
	router.GET("/api/consults/doctor/:doctorId", h.ByDoctor)
	router.POST("/api/backup/login", h.BackupLogin)
}

func (h *ConsultHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var consult model.Consult
	if err := json.NewDecoder(r.Body).Decode(&consult); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	created, err := h.service.Create(r.Context(), &consult)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, created))
}

func (h *ConsultHandler) ByPatient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	consults, err := h.service.ListByPatient(r.Context(), ps.ByName("patientId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, consults))
}

func (h *ConsultHandler) ByDoctor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	consults, err := h.service.ListByDoctor(r.Context(), ps.ByName("doctorId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, consults))
}

func (h *ConsultHandler) BackupLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	resp, err := h.backup.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Same response shape as the primary login so failover is invisible
	// to clients.
	w.Header().Set("Authorization", "Bearer "+resp.Token)
	h.logWriteFailure(pkghttp.WriteSuccess(w, resp))
}

func (h *ConsultHandler) writeError(w http.ResponseWriter, err error) {
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed", "error", appErr.Err, "message", appErr.Message)
	}
	h.logWriteFailure(pkghttp.WriteError(w, err))
}

func (h *ConsultHandler) logWriteFailure(err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}
