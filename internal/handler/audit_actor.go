package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"go-location-share/internal/middleware"
	"go-location-share/internal/model"
	"go-location-share/pkg/apierror"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ClientIP(r)}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.Subject = claims.Subject
	actor.Role = claims.Role

	return actor
}

// auditOutcome returns the status and error text stored with an audit entry.
// The text is limited to what the client was told; other causes only reach
// the log.
func auditOutcome(err error) (string, string) {
	if err == nil {
		return model.AuditStatusSuccess, ""
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		return model.AuditStatusFailure, apiErr.Code + ": " + apiErr.Message
	case errors.Is(err, model.ErrLocationNotFound):
		return model.AuditStatusFailure, apierror.CodeNotFound + ": " + model.ErrLocationNotFound.Error()
	case errors.Is(err, model.ErrMediaNotFound):
		return model.AuditStatusFailure, apierror.CodeNotFound + ": " + model.ErrMediaNotFound.Error()
	default:
		slog.Error("audited action failed", "error", err)
		return model.AuditStatusFailure, apierror.CodeInternal + ": internal error"
	}
}
