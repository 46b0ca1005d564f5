package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// Timeout bounds a whole request. Engine calls are not cancelled midway; the
// client just stops waiting for them.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message, _ := json.Marshal(errorResponse("REQUEST_TIMEOUT", "request timed out"))

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(message))
	}
}
