package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-location-share/internal/model"
	"go-location-share/internal/service"
	"go-location-share/pkg/apierror"
)

// multipartSlack covers boundaries and part headers on top of the file itself.
const multipartSlack = 1 << 20

type MediaHandler struct {
	service *service.MediaService
	audit   *service.AuditService
}

func NewMediaHandler(service *service.MediaService, audit *service.AuditService) *MediaHandler {
	return &MediaHandler{service: service, audit: audit}
}

// Upload stores the first file part of a multipart body. The form field name
// and the declared part content type are ignored.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	stored, err := h.upload(w, r)

	status, errText := auditOutcome(err)
	h.audit.Log(r.Context(), model.AuditActionUpload, actorFromRequest(r), status, stored.URL, errText)

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UploadResponse{ImageURL: stored.URL})
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request) (model.StoredMedia, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.Limits().MaxBytes+multipartSlack)
	defer r.Body.Close()

	reader, err := r.MultipartReader()
	if err != nil {
		return model.StoredMedia{}, apierror.BadRequest("expected a multipart/form-data body", "")
	}

	for {
		part, nextErr := reader.NextPart()
		if nextErr == io.EOF {
			return model.StoredMedia{}, apierror.BadRequest("no file part in upload", "")
		}
		if nextErr != nil {
			if isPayloadTooLarge(nextErr) {
				return model.StoredMedia{}, apierror.PayloadTooLarge("upload exceeds the maximum size")
			}
			return model.StoredMedia{}, apierror.BadRequest("invalid multipart stream", "")
		}

		if strings.TrimSpace(part.FileName()) == "" {
			_ = part.Close()
			continue
		}

		stored, storeErr := h.service.Store(r.Context(), part)
		_ = part.Close()
		return stored, storeErr
	}
}

// Serve returns a stored image. The wildcard is percent-decoded before
// validation so encoded separators are rejected like literal ones.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, apierror.BadRequest("invalid media name", ""))
		return
	}

	object, err := h.service.Retrieve(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(object.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(object.Data)
	}
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
