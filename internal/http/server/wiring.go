// Package server arma el handler HTTP con todas sus dependencias.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dropDatabas3/breedbox/internal/breeds"
	"github.com/dropDatabas3/breedbox/internal/cache"
	"github.com/dropDatabas3/breedbox/internal/config"
	"github.com/dropDatabas3/breedbox/internal/dogapi"
	"github.com/dropDatabas3/breedbox/internal/favorites"
	"github.com/dropDatabas3/breedbox/internal/http/controllers"
	"github.com/dropDatabas3/breedbox/internal/http/router"
	svchealth "github.com/dropDatabas3/breedbox/internal/http/services/health"
	"github.com/dropDatabas3/breedbox/internal/metrics"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
	"github.com/dropDatabas3/breedbox/internal/rate"
)

// Deps son las entradas de BuildHandler. Solo Config es obligatorio.
type Deps struct {
	Config *config.Config

	// Logger para componentes fuera de un request. nil => logger.L().
	Logger *zap.Logger

	// Registry para /metrics. nil => registry global de prometheus.
	Registry *prometheus.Registry

	// Transport para el cliente de dog.ceo (tests). nil => http.DefaultTransport.
	Transport http.RoundTripper
}

// BuildHandler construye cache, cliente upstream, gateway, favoritos, controllers y router.
// El cleanup devuelto cierra cache y clientes redis; llamarlo después de apagar el server.
func BuildHandler(deps Deps) (http.Handler, func() error, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, nil, errors.New("server: config is required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.L()
	}

	// 1. Métricas
	mcfg := metrics.Config{}
	if deps.Registry != nil {
		mcfg.Registry = deps.Registry
		mcfg.Gatherer = deps.Registry
	}
	metricsHandler, err := metrics.Register(mcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("server: register metrics: %w", err)
	}

	// 2. Cache
	cc, err := cache.New(cache.Config{
		Driver:          cfg.Cache.Kind,
		CleanupInterval: cfg.CleanupInterval(),
		Addr:            cfg.Cache.Redis.Addr,
		Password:        cfg.Cache.Redis.Password,
		DB:              cfg.Cache.Redis.DB,
		Prefix:          cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("server: init cache: %w", err)
	}
	cc = cache.Instrument(cc, cc.Driver())
	log.Info("cache ready", logger.Component("cache"), logger.String("driver", cc.Driver()))

	// 3. Upstream + gateway
	upstream := dogapi.New(dogapi.Options{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.UpstreamTimeout(),
		UserAgent: cfg.Upstream.UserAgent,
		Transport: deps.Transport,
	})
	gateway := breeds.NewGateway(upstream, cc, breeds.Config{
		BreedsTTL: cfg.BreedsTTL(),
		ImagesTTL: cfg.ImagesTTL(),
	})
	log.Info("breed gateway ready", logger.Component("breeds"), logger.Upstream(upstream.BaseURL()))

	// 4. Favoritos
	store := favorites.New(cfg.Favorites.File, log.Named("favorites"))
	log.Info("favorites store ready",
		logger.Component("favorites"),
		logger.File(store.Path()),
		logger.Count(len(store.List())),
	)

	// 5. Rate limit (opcional, mismo backend que el cache)
	closers := []func() error{cc.Close}
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		if cfg.Cache.Kind == "redis" {
			client := rdb.NewClient(&rdb.Options{
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			closers = append(closers, client.Close)
			limiter = rate.NewRedisLimiter(client, cfg.Cache.Redis.Prefix+":rl:", cfg.Rate.MaxRequests, cfg.RateWindow())
		} else {
			limiter = rate.NewMemoryLimiter("rl:", cfg.Rate.MaxRequests, cfg.RateWindow())
		}
		log.Info("rate limit enabled",
			logger.Component("rate"),
			logger.Int("max_requests", cfg.Rate.MaxRequests),
			logger.Duration(cfg.RateWindow()),
		)
	}
	cleanup := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	// 6. Controllers + router
	ctrls := controllers.New(controllers.Deps{
		Breeds:    gateway,
		Favorites: store,
		Health: svchealth.NewHealthService(svchealth.Deps{
			Version:       cfg.App.Version,
			CacheDriver:   cc.Driver(),
			CacheCheck:    cc.Ping,
			FavoritesPath: store.Path(),
		}),
	})

	handler := router.New(router.Deps{
		Controllers: ctrls,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:     metricsHandler,
		RateLimiter: limiter,
	})

	return handler, cleanup, nil
}
