package preview

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins is a list of allowed origins. Use "*" to allow all.
	AllowOrigins []string

	// AllowMethods is a list of allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders is a list of allowed headers.
	AllowHeaders []string

	// MaxAge is the max age for preflight cache in seconds.
	MaxAge int
}

// DefaultCORSConfig lets any origin read the preview endpoints.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 86400, // 24 hours
	}
}

// CORS returns a middleware applying config to every response and answering
// preflight requests.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowOrigins := make(map[string]bool)
	for _, origin := range config.AllowOrigins {
		allowOrigins[origin] = true
	}

	allowMethods := strings.Join(config.AllowMethods, ", ")
	allowHeaders := strings.Join(config.AllowHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := allowOrigins["*"] || allowOrigins[origin]

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", allowMethods)
					w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeaders sets security-related headers on every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
