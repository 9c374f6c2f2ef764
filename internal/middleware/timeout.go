package middleware

import (
	"net/http"
	"time"
)

// Timeout caps per-request handling time. The body matches the error
// envelope the handlers write so clients can parse it uniformly.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"The request took too long to process"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
