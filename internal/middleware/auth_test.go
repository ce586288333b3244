package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-location-share/internal/model"
	"go-location-share/internal/service"
)

type stubVerifier struct {
	claims map[string]*model.Claims
}

func (s stubVerifier) Verify(token string) (*model.Claims, error) {
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, service.ErrTokenBadSignature
}

func newStubAuth() *AuthMiddleware {
	return NewAuthMiddleware(stubVerifier{claims: map[string]*model.Claims{
		"admin-token": {Subject: "admin", Role: model.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)},
		"user-token":  {Subject: "alice", Role: model.RoleUser, ExpiresAt: time.Now().Add(time.Hour)},
	}})
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(claims.Subject))
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	return body.Error.Code
}

func TestRequireAdmin(t *testing.T) {
	handler := newStubAuth().RequireAdmin(claimsEcho())

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "basic scheme", header: "Basic YWRtaW46cHc=", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "empty bearer", header: "Bearer   ", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "unknown token", header: "Bearer forged", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "user role", header: "Bearer user-token", status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "admin", header: "Bearer admin-token", status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer admin-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/upload", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, rec))
			} else {
				assert.Equal(t, "admin", rec.Body.String())
			}
		})
	}
}

func TestRequireAuthAcceptsAnyRole(t *testing.T) {
	handler := newStubAuth().RequireAuth(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthorizeDecision(t *testing.T) {
	auth := newStubAuth()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	decision := auth.Authorize(req, model.RoleAdmin)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
	assert.Nil(t, decision.Claims)

	req.Header.Set("Authorization", "Bearer user-token")
	decision = auth.Authorize(req, model.RoleAdmin)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonForbidden, decision.Reason)

	req.Header.Set("Authorization", "Bearer admin-token")
	decision = auth.Authorize(req, model.RoleAdmin)
	assert.True(t, decision.Allowed)
	require.NotNil(t, decision.Claims)
	assert.Equal(t, "admin", decision.Claims.Subject)
}

func TestRequireAdminWithRealTokens(t *testing.T) {
	now := time.Now()
	issuer, err := service.NewTokenService("test-secret", service.WithClock(func() time.Time { return now.Add(-25 * time.Hour) }))
	require.NoError(t, err)
	expired, err := issuer.Issue("admin", model.RoleAdmin)
	require.NoError(t, err)

	verifier, err := service.NewTokenService("test-secret")
	require.NoError(t, err)
	valid, err := verifier.Issue("admin", model.RoleAdmin)
	require.NoError(t, err)

	handler := NewAuthMiddleware(verifier).RequireAdmin(claimsEcho())

	for token, status := range map[string]int{valid: http.StatusOK, expired: http.StatusUnauthorized, valid + "x": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	_, err := bearerToken("")
	assert.True(t, errors.Is(err, errMissingAuthorization))

	_, err = bearerToken("Token abc")
	assert.ErrorIs(t, err, errUnsupportedScheme)

	token, err := bearerToken("  BEARER abc.def.ghi ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestClaimsFromContextMissing(t *testing.T) {
	_, ok := ClaimsFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	Recovery(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
}
