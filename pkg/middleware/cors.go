package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kipngetich-lab/TukoShop-App/config"
)

// CORSOptions configures the CORS middleware.
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache, seconds
}

// DefaultCORSOptions builds options from CORS_ORIGIN (comma-separated list,
// "*" by default). Idempotency-Key is allowed so browser clients can retry
// order placement safely.
func DefaultCORSOptions() CORSOptions {
	origins := strings.Split(config.CORSOrigin(), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return CORSOptions{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}
}

func (o CORSOptions) originAllowed(origin string) (string, bool) {
	for _, allowed := range o.AllowedOrigins {
		if allowed == "*" {
			return "*", true
		}
		if strings.EqualFold(allowed, origin) {
			return origin, true
		}
	}
	return "", false
}

// CORS adds Cross-Origin Resource Sharing headers and short-circuits
// preflight requests.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(opts.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				w.Header().Add("Vary", "Origin")
				if allowed, ok := opts.originAllowed(origin); ok {
					h := w.Header()
					h.Set("Access-Control-Allow-Origin", allowed)
					h.Set("Access-Control-Allow-Methods", methods)
					h.Set("Access-Control-Allow-Headers", headers)
					if opts.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", maxAge)
					}
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
