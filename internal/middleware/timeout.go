package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-location-share/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout bounds location handlers. Uploads are excluded: their duration is
// bounded by the body size ceiling and the server write timeout instead.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
