package metrics

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestMiddleware returns chi-compatible middleware that records request count
// and error count (status >= 400) in the given Metrics.
func RequestMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			m.IncRequests()
			// Status is 0 when the handler never wrote anything; net/http sends 200.
			if ww.Status() >= 400 {
				m.IncErrors()
			}
		})
	}
}
