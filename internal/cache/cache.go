// Package cache provee un cache key/value con TTL por entrada y soporte multi-backend.
//
// Soporta:
//   - memory (in-process, go-cache; default)
//   - redis (compartido entre réplicas)
//
// La expiración se verifica en cada lectura: Get nunca devuelve una entrada cuyo TTL ya venció,
// aunque todavía no haya sido purgada. No hay eviction por tamaño.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/breedbox/internal/cache/memory"
	"github.com/dropDatabas3/breedbox/internal/cache/redis"
)

// Cache define las operaciones básicas que consumen los servicios.
type Cache interface {
	// Get obtiene un valor. ok=false si no existe o ya expiró.
	Get(key string) (value []byte, ok bool)

	// Set guarda un valor con TTL. Sobrescribe cualquier entrada previa con la misma key.
	Set(key string, value []byte, ttl time.Duration)

	// Delete elimina una key.
	Delete(key string)
}

// Client es un Cache con ciclo de vida (health + cierre).
type Client interface {
	Cache

	// Ping verifica el backend.
	Ping(ctx context.Context) error

	// Close libera recursos del backend.
	Close() error

	// Driver retorna "memory" o "redis".
	Driver() string
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Driver string // "memory" | "redis"

	// memory
	CleanupInterval time.Duration

	// redis
	Addr     string
	Password string
	DB       int
	Prefix   string // prefijo para todas las keys
}

// New crea un cliente de cache según la configuración.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "redis":
		c, err := redis.New(redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "memory", "":
		return memory.New(cfg.CleanupInterval), nil
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", cfg.Driver)
	}
}
