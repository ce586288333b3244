package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-location-share/internal/model"
	"go-location-share/pkg/apierror"
)

type tokenVerifier interface {
	Verify(token string) (*model.Claims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

// Decision is the outcome of authorizing one request.
type Decision struct {
	Allowed bool
	Claims  *model.Claims
	Reason  string
}

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authorize extracts and verifies the bearer token and, when requiredRole is
// not empty, checks the role carried by the claims.
func (m *AuthMiddleware) Authorize(r *http.Request, requiredRole string) Decision {
	claims, err := m.authenticate(r)
	if err != nil {
		slog.Debug("authentication rejected", "path", r.URL.Path, "reason", err.Error())
		return Decision{Reason: ReasonUnauthenticated}
	}

	if requiredRole != "" && claims.Role != requiredRole {
		slog.Debug("authorization rejected", "path", r.URL.Path, "subject", claims.Subject, "role", claims.Role)
		return Decision{Claims: claims, Reason: ReasonForbidden}
	}

	return Decision{Allowed: true, Claims: claims}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.RequireRole("")(next)
}

func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := m.Authorize(r, role)
			if !decision.Allowed {
				writeDenied(w, decision.Reason)
				return
			}

			noteClaims(r.Context(), decision.Claims)
			ctx := context.WithValue(r.Context(), authClaimsContextKey, decision.Claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(model.RoleAdmin)(next)
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*model.Claims, error) {
	token, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}

	return m.verifier.Verify(token)
}

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errUnsupportedScheme    = errors.New("authorization scheme is not bearer")
	errEmptyToken           = errors.New("empty bearer token")
)

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errMissingAuthorization
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", errUnsupportedScheme
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyToken
	}

	return token, nil
}

func ClaimsFromContext(ctx context.Context) (*model.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.Claims)
	return claims, ok && claims != nil
}

func writeDenied(w http.ResponseWriter, reason string) {
	if reason == ReasonForbidden {
		writeAPIError(w, apierror.Forbidden("insufficient permissions"))
		return
	}
	writeAPIError(w, apierror.Unauthenticated("authentication required"))
}
