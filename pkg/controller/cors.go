package controller

import (
	"net/http"
	"strings"
)

// DefaultAllowedHeaders are the request headers browsers may send cross-origin.
var DefaultAllowedHeaders = []string{ //nolint: gochecknoglobals
	"Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
	"Accept", "Origin", "Cache-Control", "X-Request-Id", "X-Shopco-Webhook-Key",
}

// WithCORS returns a middleware that allows any origin and the given request
// headers, falling back to DefaultAllowedHeaders when none are given.
// Preflight requests are answered with 204 No Content.
func WithCORS(allowedHeaders []string) func(http.Handler) http.Handler {
	if len(allowedHeaders) == 0 {
		allowedHeaders = DefaultAllowedHeaders
	}
	allowed := strings.Join(allowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", allowed)
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Expose-Headers", "X-Request-Id")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
