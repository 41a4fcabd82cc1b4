package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500
// Internal Server Error. Stack traces are logged, never sent to the client.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					utils.LogPanic(err, debug.Stack())

					utils.Error(
						w,
						http.StatusInternalServerError,
						"internal_error",
						"An unexpected error occurred while processing your request",
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
