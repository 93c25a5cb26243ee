// Package memory implementa el driver in-process del cache sobre go-cache.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval es cada cuánto el janitor de go-cache purga entradas vencidas.
// La purga es solo para liberar memoria: Get ya ignora entradas vencidas.
const DefaultCleanupInterval = time.Minute

type Cache struct{ c *gocache.Cache }

// New crea un cache en memoria. cleanup <= 0 usa DefaultCleanupInterval.
func New(cleanup time.Duration) *Cache {
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Cache{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *Cache) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set guarda v con TTL. ttl <= 0 => no expira.
func (m *Cache) Set(k string, v []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(k, v, ttl)
}

func (m *Cache) Delete(k string) { m.c.Delete(k) }

// Len retorna la cantidad de entradas (puede incluir vencidas aún no purgadas).
func (m *Cache) Len() int { return m.c.ItemCount() }

func (m *Cache) Ping(context.Context) error { return nil }

func (m *Cache) Close() error {
	m.c.Flush()
	return nil
}

func (m *Cache) Driver() string { return "memory" }
