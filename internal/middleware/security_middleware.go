// Package middleware provides HTTP middleware components.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// RateLimiter tracks request counts per client IP over a fixed window. It
// protects the upload endpoint from abuse; documents are expensive to process.
type RateLimiter struct {
	mu      sync.Mutex
	counts  map[string]*windowCount
	limit   int
	window  time.Duration
	stopped chan struct{}
}

type windowCount struct {
	count   int
	started time.Time
}

// NewRateLimiter creates a rate limiter allowing limit requests per window
// per client IP. A background sweep drops idle entries.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		counts:  make(map[string]*windowCount),
		limit:   limit,
		window:  window,
		stopped: make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop terminates the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.stopped)
}

// Allow reports whether the client may make another request.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	wc, ok := rl.counts[clientIP]
	if !ok || now.Sub(wc.started) > rl.window {
		rl.counts[clientIP] = &windowCount{count: 1, started: now}
		return true
	}
	wc.count++
	return wc.count <= rl.limit
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopped:
			return
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for ip, wc := range rl.counts {
				if now.Sub(wc.started) > rl.window {
					delete(rl.counts, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// RateLimit is middleware that limits the rate of requests from clients.
// Health and version endpoints are exempt.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			if !limiter.Allow(clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", "60")
				utils.Error(w, http.StatusTooManyRequests, "too_many_requests",
					"Rate limit exceeded. Please try again later.", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders is middleware that sets defensive response headers on every
// response. Served artifacts are sensitive and must not be sniffed, framed,
// or cached by intermediaries.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constants.HeaderXContentTypeOptions, constants.XContentTypeOptionsValue)
			w.Header().Set(constants.HeaderXFrameOptions, constants.XFrameOptionsValue)
			w.Header().Set(constants.HeaderXSSProtection, constants.XSSProtectionValue)
			w.Header().Set("Referrer-Policy", "no-referrer")

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP address from the request,
// taking into account common proxy headers.
func getClientIP(r *http.Request) string {
	xForwardedFor := r.Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		// Use the leftmost IP in the list (client IP)
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := r.Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If there's no port in the address, use it as is
		return r.RemoteAddr
	}
	return ip
}

// isExemptedPath returns true if the path should be exempted from
// rate limiting (e.g., health checks).
func isExemptedPath(path string) bool {
	exemptPrefixes := []string{
		"/health",
		"/version",
		"/favicon.ico",
	}

	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
