package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS answers cross-origin requests from the allowed origins. If the list
// is empty, it does NOT add any header (passthrough).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", "Cache-Control"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
	// Credentials cannot be combined with a wildcard origin.
	opts.AllowCredentials = !contains(allowedOrigins, "*")

	return cors.Handler(opts)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
