package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

const defaultMaxRequestsPerSecond = 50

// RateLimit limits each client IP to the configured requests per second.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	maxRequests := m.InternalConfig.App.MaxRequests
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequestsPerSecond
	}
	return httprate.LimitByIP(maxRequests, time.Second)
}
