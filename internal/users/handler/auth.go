package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"medibook/internal/users/service"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	pkghttp "medibook/pkg/http"
	"medibook/pkg/model"
	"medibook/pkg/token"
)

// AuthHandler serves the primary authentication path.
type AuthHandler struct {
	service service.AuthService
	issuer  *token.Issuer
	cfg     *config.Config
}

func NewAuthHandler(service service.AuthService, issuer *token.Issuer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, issuer: issuer, cfg: cfg}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/userauth/register", h.Register)
	router.POST("/userauth/login", h.Login)
	router.GET("/userauth/profile", h.Profile)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	patient, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteCreated(w, patient))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON body"))
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	// Clients behind the gateway read the token from the header as well
	// as the body.
	w.Header().Set("Authorization", "Bearer "+resp.Token)
	h.logWriteFailure(pkghttp.WriteSuccess(w, resp))
}

// Profile resolves the caller from their bearer token and returns the
// stored record, not the token's embedded snapshot.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := h.issuer.Verify(bearerToken(r))
	if err != nil {
		h.writeError(w, apperrors.Unauthorized("Invalid or missing token"))
		return
	}

	patient, err := h.service.Profile(r.Context(), claims.Patient.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logWriteFailure(pkghttp.WriteSuccess(w, patient))
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(auth, "Bearer "); found {
		return after
	}
	return ""
}

func (h *AuthHandler) writeError(w http.ResponseWriter, err error) {
	if appErr := apperrors.AsAppError(err); appErr.StatusCode() >= http.StatusInternalServerError {
		h.cfg.Log.Error("Request failed", "error", appErr.Err, "message", appErr.Message)
	}
	h.logWriteFailure(pkghttp.WriteError(w, err))
}

func (h *AuthHandler) logWriteFailure(err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}
