// Package router arma el árbol de rutas chi del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/breedbox/internal/http/controllers"
	httperrors "github.com/dropDatabas3/breedbox/internal/http/errors"
	mw "github.com/dropDatabas3/breedbox/internal/http/middlewares"
	"github.com/dropDatabas3/breedbox/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Controllers *controllers.Controllers

	// CORSOrigins son los orígenes permitidos ("*" = cualquiera). Vacío deshabilita CORS.
	CORSOrigins []string

	// Metrics sirve /metrics. nil => la ruta no se registra.
	Metrics http.Handler

	// RateLimiter limita /api por IP. nil => sin límite.
	RateLimiter rate.Limiter
}

// New devuelve el handler raíz con todas las rutas registradas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(deps.CORSOrigins),
		mw.WithLogging(),
		mw.WithMetrics(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound.WithDetail(r.Method+" "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	c := deps.Controllers
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.WithRateLimit(mw.RateLimitConfig{Limiter: deps.RateLimiter}))
		RegisterBreedRoutes(r, c)
		RegisterFavoriteRoutes(r, c)
	})
	RegisterHealthRoutes(r, c, deps.Metrics)

	return r
}

// RegisterBreedRoutes registra /breeds (montado bajo /api).
func RegisterBreedRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/breeds", c.Breeds.List)
	r.Get("/breeds/{breed}/images/{quantity}", c.Breeds.Images)
}

// RegisterFavoriteRoutes registra /favorites (montado bajo /api).
func RegisterFavoriteRoutes(r chi.Router, c *controllers.Controllers) {
	r.Get("/favorites", c.Favorites.List)
	r.Post("/favorites", c.Favorites.Add)
	r.Delete("/favorites/{breed}", c.Favorites.Remove)
}

// RegisterHealthRoutes registra /readyz y /metrics. Ninguno se cachea.
func RegisterHealthRoutes(r chi.Router, c *controllers.Controllers, metricsHandler http.Handler) {
	r.Method(http.MethodGet, "/readyz", mw.Chain(http.HandlerFunc(c.Health.Readyz), mw.WithNoStore()))
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", mw.Chain(metricsHandler, mw.WithNoStore()))
	}
}
