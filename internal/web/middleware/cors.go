package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// corsMaxAge is how long browsers may cache a preflight result, in seconds.
const corsMaxAge = 86400

// CORS lets browsers on the given origins read the API. "*" allows any
// origin and "*.example.com" any subdomain of example.com. The API is
// read-only, so only GET, HEAD and OPTIONS are advertised.
func CORS(allowedOrigins ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := origin != "" && isOriginAllowed(origin, allowedOrigins)

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, "+RequestIDHeader)
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		// *.example.com matches subdomains but not example.com itself
		if domain, ok := strings.CutPrefix(allowed, "*."); ok && strings.HasSuffix(origin, "."+domain) {
			return true
		}
	}
	return false
}
