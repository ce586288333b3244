package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go-location-share/internal/model"
	"go-location-share/internal/service"
	"go-location-share/pkg/apierror"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

type auditListResponse struct {
	Items []model.AuditEntry `json:"items"`
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, apierror.BadRequest("limit must be a positive integer", "limit"))
			return
		}
		limit = parsed
	}

	items, err := h.service.Recent(r.Context(), query.Get("action"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, auditListResponse{Items: items})
}
