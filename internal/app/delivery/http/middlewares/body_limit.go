package middlewares

import (
	"net/http"
)

const bytesPerMegabyte = 1 << 20

// BodyLimit caps request bodies at the configured size. Reads past the cap
// fail with *http.MaxBytesError, which controllers report as 413.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) * bytesPerMegabyte
	if limit <= 0 {
		limit = bytesPerMegabyte
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
