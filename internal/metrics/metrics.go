// Package metrics expone las métricas Prometheus del servicio.
//
// Las funciones Record* son no-op hasta que se llama Register, así los tests
// de paquetes de dominio no necesitan un registry.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	// Dominio
	cacheRequestsTotal    *prometheus.CounterVec
	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec
	favoritesWritesTotal  *prometheus.CounterVec
)

// Config agrupa dependencias para exponer /metrics.
type Config struct {
	// Registry donde se registran los collectors. nil => prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
	// Gatherer que sirve /metrics. nil => prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Register crea las métricas (una sola vez por proceso), las registra en cfg.Registry
// y devuelve el handler de /metrics.
func Register(cfg Config) (http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método",
		}, []string{"method"})

		cacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breedbox_cache_requests_total",
			Help: "Lecturas de cache por resultado",
		}, []string{"cache", "result"}) // result: hit|miss

		upstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breedbox_upstream_requests_total",
			Help: "Llamadas al API de razas por endpoint y resultado",
		}, []string{"endpoint", "outcome"}) // outcome: ok|not_found|http_error|transport_error|malformed

		upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breedbox_upstream_request_duration_seconds",
			Help:    "Latencia de las llamadas al API de razas",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"})

		favoritesWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breedbox_favorites_writes_total",
			Help: "Escrituras del archivo de favoritos por resultado",
		}, []string{"result"}) // result: ok|failed
	})

	// Los collectors son únicos por proceso; cada registry que pida /metrics los registra.
	for _, c := range []prometheus.Collector{
		httpRequestsTotal, httpRequestDuration, httpInflight,
		cacheRequestsTotal, upstreamRequestsTotal, upstreamDuration, favoritesWritesTotal,
	} {
		if err := registerCollector(registry, c); err != nil {
			return nil, err
		}
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), nil
}

// registerCollector registra el collector ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// HTTPStart marca un request en vuelo; el func devuelto lo cierra y registra status y latencia.
// route debe ser el patrón (no el path crudo) para no explotar la cardinalidad.
func HTTPStart(method string) func(route string, status int) {
	start := time.Now()
	if httpInflight != nil {
		httpInflight.WithLabelValues(method).Inc()
	}
	return func(route string, status int) {
		if httpInflight != nil {
			httpInflight.WithLabelValues(method).Dec()
		}
		if httpRequestDuration != nil {
			httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		}
		if httpRequestsTotal != nil {
			httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		}
	}
}

// RecordCacheLookup registra un hit o miss para el cache name.
func RecordCacheLookup(name string, hit bool) {
	if cacheRequestsTotal == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestsTotal.WithLabelValues(name, result).Inc()
}

// RecordUpstream registra una llamada al API externo.
func RecordUpstream(endpoint, outcome string, d time.Duration) {
	if upstreamRequestsTotal != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	}
	if upstreamDuration != nil {
		upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}

// RecordFavoritesWrite registra el resultado de persistir el archivo de favoritos.
func RecordFavoritesWrite(ok bool) {
	if favoritesWritesTotal == nil {
		return
	}
	result := "failed"
	if ok {
		result = "ok"
	}
	favoritesWritesTotal.WithLabelValues(result).Inc()
}
