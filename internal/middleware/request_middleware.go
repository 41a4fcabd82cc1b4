package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

type contextKey string

// requestIDKey is the context key under which the request ID is stored.
const requestIDKey contextKey = constants.RequestIDContextKey

// RequestID is middleware that assigns each request a unique ID for log
// correlation. An incoming X-Request-ID header is honored when present.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set(constants.HeaderRequestID, requestID)
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the request ID assigned by the RequestID middleware.
func GetRequestID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey).(string)
	return id, ok
}

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogging is middleware that logs every request with its outcome and
// latency.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			requestID, _ := GetRequestID(r)
			utils.LogHTTPRequest(
				requestID,
				r.Method,
				r.URL.Path,
				r.RemoteAddr,
				r.UserAgent(),
				recorder.status,
				time.Since(start),
			)
		})
	}
}
