package handler

import (
	"net/http"

	"go-location-share/internal/model"
	"go-location-share/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
	audit   *service.AuditService
}

func NewAuthHandler(service *service.AuthService, audit *service.AuditService) *AuthHandler {
	return &AuthHandler{service: service, audit: audit}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), payload.Username, payload.Password)

	actor := actorFromRequest(r)
	actor.Subject = payload.Username
	status, errText := auditOutcome(err)
	h.audit.Log(r.Context(), model.AuditActionLogin, actor, status, "", errText)

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
