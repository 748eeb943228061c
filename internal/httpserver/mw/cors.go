package mw

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS lets a browser-based editor served from another origin call the API.
// Allowed origins use the same patterns as EnforceHost ("*.example.com");
// an empty list allows any origin. Disallowed origins get no CORS headers,
// so the browser blocks the response.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return originAllowed(origin, allowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         600,
	})
}

func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	for _, pattern := range allowed {
		if matchHost(host, pattern) {
			return true
		}
	}
	return false
}
