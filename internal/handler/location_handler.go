package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go-location-share/internal/model"
	"go-location-share/internal/service"
	"go-location-share/pkg/apierror"
)

type LocationHandler struct {
	service *service.LocationService
	audit   *service.AuditService
}

func NewLocationHandler(service *service.LocationService, audit *service.AuditService) *LocationHandler {
	return &LocationHandler{service: service, audit: audit}
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}

	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	location, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, location)
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateLocationRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	location, err := h.service.Create(r.Context(), payload)
	h.record(r, model.AuditActionLocationCreate, location.ID, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, location)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateLocationRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	location, err := h.service.Update(r.Context(), id, payload)
	h.record(r, model.AuditActionLocationUpdate, id, err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, location)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	err = h.service.Delete(r.Context(), id)
	h.record(r, model.AuditActionLocationDelete, id, err)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LocationHandler) record(r *http.Request, action string, id uuid.UUID, err error) {
	resource := ""
	if id != uuid.Nil {
		resource = id.String()
	}
	status, errText := auditOutcome(err)
	h.audit.Log(r.Context(), action, actorFromRequest(r), status, resource, errText)
}

func locationID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		return uuid.Nil, apierror.BadRequest("invalid location id", "id")
	}
	return id, nil
}
