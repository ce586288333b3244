package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-location-share/internal/model"
)

const requestIDHeader = "X-Request-ID"

const requestLogContextKey contextKey = "request_log"

// requestLog collects fields that only become known deeper in the chain. The
// mutex matters when Timeout abandons a handler that is still running.
type requestLog struct {
	mu      sync.Mutex
	subject string
	role    string
}

func (l *requestLog) identity() (string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.subject, l.role
}

type errorEnvelope struct {
	Error *model.APIError `json:"error"`
}

// Logging emits one line per request. Failed requests also carry the error
// code from the response envelope, and authenticated ones the token subject.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		entry := &requestLog{}
		r = r.WithContext(context.WithValue(r.Context(), requestLogContextKey, entry))

		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		attrs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"bytes", recorder.written,
			"duration_ms", time.Since(started).Milliseconds(),
			"client_ip", ClientIP(r),
		}
		if subject, role := entry.identity(); subject != "" {
			attrs = append(attrs, "subject", subject, "role", role)
		}
		if code := recorder.errorCode(); code != "" {
			attrs = append(attrs, "error_code", code)
		}

		switch {
		case recorder.status >= 500:
			slog.Error("request", attrs...)
		case recorder.status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	})
}

// noteClaims records the verified identity for the request log line.
func noteClaims(ctx context.Context, claims *model.Claims) {
	if entry, ok := ctx.Value(requestLogContextKey).(*requestLog); ok && claims != nil {
		entry.mu.Lock()
		entry.subject = claims.Subject
		entry.role = claims.Role
		entry.mu.Unlock()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
	errBody     bytes.Buffer
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}
	rw.status = statusCode
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	// Error envelopes are small; media bodies are never buffered.
	if rw.status >= 400 && rw.errBody.Len() < 4096 {
		rw.errBody.Write(b)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *statusRecorder) errorCode() string {
	if rw.status < 400 || rw.errBody.Len() == 0 {
		return ""
	}
	var parsed errorEnvelope
	if err := json.Unmarshal(rw.errBody.Bytes(), &parsed); err != nil || parsed.Error == nil {
		return ""
	}
	return parsed.Error.Code
}
