package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSTS(t *testing.T) {
	rr := httptest.NewRecorder()
	HSTS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "max-age=31536000; includeSubDomains", rr.Header().Get("Strict-Transport-Security"))
}

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		allowed []string
		want    bool
	}{
		{name: "empty list allows all", host: "anything.com", want: true},
		{name: "exact with port", host: "admin.example.com:8443", allowed: []string{"admin.example.com:8443"}, want: true},
		{name: "host without port", host: "admin.example.com", allowed: []string{"admin.example.com:8443"}, want: true},
		{name: "port ignored against bare entry", host: "admin.example.com:80", allowed: []string{"admin.example.com"}, want: true},
		{name: "case and whitespace", host: " Admin.Example.com ", allowed: []string{"ADMIN.example.com"}, want: true},
		{name: "ipv6 with port", host: "[::1]:8080", allowed: []string{"::1"}, want: true},
		{name: "ipv6 entry with port", host: "[::1]", allowed: []string{"[::1]:8080"}, want: false},
		{name: "other host rejected", host: "evil.com", allowed: []string{"admin.example.com"}, want: false},
		{name: "suffix attack rejected", host: "admin.example.com.evil.com", allowed: []string{"admin.example.com"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHostAllowed(tt.host, tt.allowed))
		})
	}
}
