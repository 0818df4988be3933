package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS adds the Strict-Transport-Security header for one year, subdomains included.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// IsHostAllowed reports whether host may be used as an HTTPS redirect target.
// An empty allow list accepts every host.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	host = strings.ToLower(strings.TrimSpace(host))
	bare, _, err := net.SplitHostPort(host)
	if err != nil {
		bare = host
	}

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		allowedBare := allowed
		if h, _, err := net.SplitHostPort(allowed); err == nil {
			allowedBare = h
		}

		if host == allowed || bare == allowedBare {
			return true
		}
	}

	return false
}
