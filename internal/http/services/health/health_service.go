// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	dto "github.com/dropDatabas3/breedbox/internal/http/dto/health"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
)

// checkTimeout acota cada chequeo individual.
const checkTimeout = 2 * time.Second

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Version       string
	CacheDriver   string                          // "memory" | "redis"
	CacheCheck    func(ctx context.Context) error // ping al cache (no crítico)
	FavoritesPath string                          // archivo de favoritos (crítico: su directorio debe existir)
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.HealthStatus),
		Version:    s.deps.Version,
		Timestamp:  time.Now().UTC(),
	}

	var (
		mu                sync.Mutex
		hasErrors         bool
		hasCriticalErrors bool
	)
	set := func(name string, st dto.HealthStatus, critical bool) {
		mu.Lock()
		defer mu.Unlock()
		response.Components[name] = st
		if st.Status == "error" {
			hasErrors = true
			if critical {
				hasCriticalErrors = true
			}
		}
	}

	// Los chequeos nunca devuelven error al grupo: el resultado va al componente.
	g, gctx := errgroup.WithContext(ctx)

	// 1) Cache (no crítico: sin cache el gateway sigue respondiendo desde upstream)
	g.Go(func() error {
		if s.deps.CacheCheck == nil {
			set("cache", dto.HealthStatus{Status: "disabled"}, false)
			return nil
		}
		cctx, cancel := context.WithTimeout(gctx, checkTimeout)
		defer cancel()
		if err := s.deps.CacheCheck(cctx); err != nil {
			log.Error("cache unavailable", logger.String("driver", s.deps.CacheDriver), logger.Err(err))
			set("cache", dto.HealthStatus{Status: "error", Message: fmt.Sprintf("%s unavailable: %v", s.deps.CacheDriver, err)}, false)
			return nil
		}
		set("cache", dto.HealthStatus{Status: "ok", Message: s.deps.CacheDriver}, false)
		return nil
	})

	// 2) Favorites (crítico: sin directorio no se puede persistir)
	g.Go(func() error {
		if s.deps.FavoritesPath == "" {
			set("favorites", dto.HealthStatus{Status: "disabled"}, true)
			return nil
		}
		if err := checkDir(filepath.Dir(s.deps.FavoritesPath)); err != nil {
			log.Error("favorites storage unavailable", logger.File(s.deps.FavoritesPath), logger.Err(err))
			set("favorites", dto.HealthStatus{Status: "error", Message: err.Error()}, true)
			return nil
		}
		set("favorites", dto.HealthStatus{Status: "ok"}, true)
		return nil
	})

	_ = g.Wait()

	// Status final
	if hasCriticalErrors {
		response.Status = "unavailable"
	} else if hasErrors {
		response.Status = "degraded"
	} else {
		response.Status = "ready"
	}

	return response
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
