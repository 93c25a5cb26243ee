package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/breedbox/internal/metrics"
)

// WithMetrics registra latencia y status por patrón de ruta.
// Tiene que montarse dentro del router chi para que el patrón esté resuelto al terminar.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := metrics.HTTPStart(r.Method)
			rec := recorderFor(w)
			next.ServeHTTP(rec, r)
			done(routePattern(r), rec.status)
		})
	}
}
