// Package redis implementa el driver Redis del cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// opTimeout acota cada operación; el cache nunca debe bloquear un request más que esto.
const opTimeout = 2 * time.Second

type Options struct {
	Addr     string // host:port, default localhost:6379
	Password string
	DB       int
	Prefix   string
}

type Cache struct {
	c      *rdb.Client
	prefix string
}

// New crea el cliente y verifica la conexión con PING.
func New(opts Options) (*Cache, error) {
	addr := opts.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := rdb.NewClient(&rdb.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return &Cache{c: client, prefix: opts.Prefix}, nil
}

func (r *Cache) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

// Get trata cualquier error de redis como miss.
func (r *Cache) Get(k string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	b, err := r.c.Get(ctx, r.key(k)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set guarda v con TTL nativo de redis. ttl <= 0 => sin expiración.
func (r *Cache) Set(k string, v []byte, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_ = r.c.Set(ctx, r.key(k), v, ttl).Err()
}

func (r *Cache) Delete(k string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_ = r.c.Del(ctx, r.key(k)).Err()
}

// Exists distingue "no está" de "redis caído", a diferencia de Get.
func (r *Cache) Exists(ctx context.Context, k string) (bool, error) {
	n, err := r.c.Exists(ctx, r.key(k)).Result()
	if err != nil && !errors.Is(err, rdb.Nil) {
		return false, err
	}
	return n > 0, nil
}

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func (r *Cache) Driver() string { return "redis" }
