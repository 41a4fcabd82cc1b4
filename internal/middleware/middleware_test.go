package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	errInfo := resp["error"].(map[string]interface{})
	assert.Equal(t, "internal_error", errInfo["code"])
	assert.NotContains(t, rec.Body.String(), "boom", "Panic values stay out of responses")
}

func TestRecoveryPassesThroughNormally(t *testing.T) {
	handler := Recovery()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "Request %d within the limit", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "Fourth request exceeds the limit")

	// Other clients have independent windows.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"), "A fresh window admits the client again")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	handler := RateLimit(rl)(okHandler())

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "192.168.1.5:41000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("/api/upload").Code)
	assert.Equal(t, http.StatusOK, send("/api/upload").Code)

	limited := send("/api/upload")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	// Health checks bypass the limiter entirely.
	assert.Equal(t, http.StatusOK, send("/health").Code)
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, constants.XContentTypeOptionsValue, rec.Header().Get(constants.HeaderXContentTypeOptions))
	assert.Equal(t, constants.XFrameOptionsValue, rec.Header().Get(constants.HeaderXFrameOptions))
	assert.Equal(t, constants.XSSProtectionValue, rec.Header().Get(constants.HeaderXSSProtection))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
}

func TestRequestIDGenerated(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestID(r)
		require.True(t, ok)
		captured = id
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	assert.NoError(t, err, "Generated request IDs are UUIDs")
	assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", captured)
	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggingRecordsStatus(t *testing.T) {
	handler := RequestLogging()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "203.0.113.7:52100",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for takes the leftmost entry",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.2"},
			want:       "198.51.100.9",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			want:       "198.51.100.4",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.8",
			want:       "203.0.113.8",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(req))
		})
	}
}

func TestIsExemptedPath(t *testing.T) {
	assert.True(t, isExemptedPath("/health"))
	assert.True(t, isExemptedPath("/version"))
	assert.True(t, isExemptedPath("/favicon.ico"))
	assert.False(t, isExemptedPath("/api/upload"))
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(1000, time.Minute)
	defer rl.Stop()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			ip := fmt.Sprintf("10.1.0.%d", n)
			for j := 0; j < 100; j++ {
				rl.Allow(ip)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.True(t, rl.Allow("10.1.0.0"), "101st request is still under the limit")
}
