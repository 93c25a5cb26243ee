// Package breeds implementa el gateway de datos de razas: lee a través del cache
// y, en un miss, hace una única llamada al API externo.
package breeds

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/dropDatabas3/breedbox/internal/cache"
	"github.com/dropDatabas3/breedbox/internal/dogapi"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
)

const (
	// BreedsCacheKey es la key fija del listado completo.
	BreedsCacheKey = "breeds"

	DefaultBreedsTTL = 5 * time.Minute
	DefaultImagesTTL = 10 * time.Minute

	componentBreeds = "breeds"
)

var (
	// ErrServiceUnavailable: cualquier falla del upstream que no sea "raza no encontrada".
	ErrServiceUnavailable = errors.New("breeds: upstream service unavailable")

	// ErrBreedNotFound: el upstream reportó la raza como desconocida.
	ErrBreedNotFound = errors.New("breeds: breed not found")
)

// BreedNotFoundError nombra la raza pedida. errors.Is(err, ErrBreedNotFound) == true.
type BreedNotFoundError struct {
	Breed string
	Err   error
}

func (e *BreedNotFoundError) Error() string { return fmt.Sprintf("Breed '%s' not found", e.Breed) }

func (e *BreedNotFoundError) Is(target error) bool { return target == ErrBreedNotFound }

func (e *BreedNotFoundError) Unwrap() error { return e.Err }

// Upstream abstrae el API externo (implementado por *dogapi.Client).
type Upstream interface {
	ListAllBreeds(ctx context.Context) (map[string][]string, error)
	RandomImages(ctx context.Context, breed string, n int) ([]string, error)
}

var _ Upstream = (*dogapi.Client)(nil)

// Config TTLs del gateway. Cero => default.
type Config struct {
	BreedsTTL time.Duration
	ImagesTTL time.Duration
}

// Gateway no coalesce requests: dos misses simultáneos de la misma key hacen dos llamadas al upstream.
type Gateway struct {
	upstream  Upstream
	cache     cache.Cache
	breedsTTL time.Duration
	imagesTTL time.Duration
}

// NewGateway crea el gateway. Una instancia por proceso, construida en el wiring.
func NewGateway(upstream Upstream, c cache.Cache, cfg Config) *Gateway {
	g := &Gateway{
		upstream:  upstream,
		cache:     c,
		breedsTTL: cfg.BreedsTTL,
		imagesTTL: cfg.ImagesTTL,
	}
	if g.breedsTTL <= 0 {
		g.breedsTTL = DefaultBreedsTTL
	}
	if g.imagesTTL <= 0 {
		g.imagesTTL = DefaultImagesTTL
	}
	return g
}

// ImagesCacheKey arma la key compuesta sin normalizar breed.
func ImagesCacheKey(breed string, quantity int) string {
	return fmt.Sprintf("breed_images_%s_%d", breed, quantity)
}

// GetAllBreeds retorna los nombres de raza de primer nivel (las sub-razas se ignoran), ordenados.
func (g *Gateway) GetAllBreeds(ctx context.Context) ([]string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentBreeds),
		logger.Op("GetAllBreeds"),
	)

	if cached, ok := cache.GetJSON[[]string](g.cache, BreedsCacheKey); ok {
		log.Debug("breeds served from cache", logger.CacheKey(BreedsCacheKey), logger.Count(len(cached)))
		return cached, nil
	}

	all, err := g.upstream.ListAllBreeds(ctx)
	if err != nil {
		log.Warn("upstream list breeds failed", logger.Err(err))
		return nil, fmt.Errorf("%w: list breeds: %w", ErrServiceUnavailable, err)
	}

	list := slices.Sorted(maps.Keys(all))
	if list == nil {
		list = []string{}
	}

	if err := cache.SetJSON(g.cache, BreedsCacheKey, list, g.breedsTTL); err != nil {
		log.Warn("cache write failed", logger.CacheKey(BreedsCacheKey), logger.Err(err))
	}

	log.Debug("breeds fetched from upstream", logger.Count(len(list)))
	return list, nil
}

// GetBreedImages retorna quantity URLs de imágenes aleatorias de breed.
func (g *Gateway) GetBreedImages(ctx context.Context, breed string, quantity int) ([]string, error) {
	key := ImagesCacheKey(breed, quantity)
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentBreeds),
		logger.Op("GetBreedImages"),
		logger.Breed(breed),
		logger.Quantity(quantity),
	)

	if cached, ok := cache.GetJSON[[]string](g.cache, key); ok {
		log.Debug("images served from cache", logger.CacheKey(key))
		return cached, nil
	}

	images, err := g.upstream.RandomImages(ctx, breed, quantity)
	if err != nil {
		if dogapi.IsNotFound(err) {
			log.Info("breed unknown to upstream")
			return nil, &BreedNotFoundError{Breed: breed, Err: err}
		}
		log.Warn("upstream random images failed", logger.Err(err))
		return nil, fmt.Errorf("%w: breed images: %w", ErrServiceUnavailable, err)
	}

	if err := cache.SetJSON(g.cache, key, images, g.imagesTTL); err != nil {
		log.Warn("cache write failed", logger.CacheKey(key), logger.Err(err))
	}

	log.Debug("images fetched from upstream", logger.Count(len(images)))
	return images, nil
}
