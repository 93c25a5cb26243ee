package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv deja vacías las variables que lee applyEnvOverrides.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "SERVICE_VERSION", "SERVER_ADDR", "CORS_ALLOWED_ORIGINS", "SERVER_CORS_ALLOWED_ORIGINS",
		"SERVER_SHUTDOWN_TIMEOUT", "DOG_API_BASE_URL", "DOG_API_TIMEOUT", "DOG_API_USER_AGENT",
		"CACHE_KIND", "CACHE_BREEDS_TTL", "CACHE_IMAGES_TTL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"CACHE_PREFIX", "FAVORITES_FILE", "RATE_ENABLED", "RATE_WINDOW", "RATE_MAX_REQUESTS", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "dev", c.App.Env)
	require.Equal(t, ":3000", c.Server.Addr)
	require.Equal(t, []string{"*"}, c.Server.CORSAllowedOrigins)
	require.Equal(t, "https://dog.ceo/api", c.Upstream.BaseURL)
	require.Equal(t, 10*time.Second, c.UpstreamTimeout())
	require.Equal(t, "memory", c.Cache.Kind)
	require.Equal(t, 5*time.Minute, c.BreedsTTL())
	require.Equal(t, 10*time.Minute, c.ImagesTTL())
	require.Equal(t, time.Minute, c.CleanupInterval())
	require.Equal(t, 10*time.Second, c.ShutdownTimeout())
	require.Equal(t, "favorites.json", c.Favorites.File)
	require.Equal(t, "info", c.Log.Level)
	require.False(t, c.Rate.Enabled)
	require.Equal(t, time.Minute, c.RateWindow())
	require.Equal(t, 120, c.Rate.MaxRequests)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://dogs.example ,")
	t.Setenv("DOG_API_BASE_URL", "http://upstream.local/api")
	t.Setenv("DOG_API_TIMEOUT", "3s")
	t.Setenv("CACHE_KIND", "redis")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_PREFIX", "bb")
	t.Setenv("CACHE_BREEDS_TTL", "30s")
	t.Setenv("FAVORITES_FILE", "/data/favs.json")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RATE_ENABLED", "true")
	t.Setenv("RATE_MAX_REQUESTS", "10")

	c, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "prod", c.App.Env)
	require.Equal(t, ":9090", c.Server.Addr)
	require.Equal(t, []string{"http://localhost:5173", "https://dogs.example"}, c.Server.CORSAllowedOrigins)
	require.Equal(t, "http://upstream.local/api", c.Upstream.BaseURL)
	require.Equal(t, 3*time.Second, c.UpstreamTimeout())
	require.Equal(t, "redis", c.Cache.Kind)
	require.Equal(t, "127.0.0.1:6379", c.Cache.Redis.Addr)
	require.Equal(t, 2, c.Cache.Redis.DB)
	require.Equal(t, "bb", c.Cache.Redis.Prefix)
	require.Equal(t, 30*time.Second, c.BreedsTTL())
	require.Equal(t, "/data/favs.json", c.Favorites.File)
	require.Equal(t, "debug", c.Log.Level)
	require.True(t, c.Rate.Enabled)
	require.Equal(t, 10, c.Rate.MaxRequests)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  app_env: staging
server:
  addr: ":8081"
  cors_allowed_origins: ["http://localhost:5173"]
cache:
  kind: memory
  images_ttl: 1m
favorites:
  file: data/favorites.json
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", c.App.Env)
	require.Equal(t, ":8081", c.Server.Addr)
	require.Equal(t, []string{"http://localhost:5173"}, c.Server.CORSAllowedOrigins)
	require.Equal(t, time.Minute, c.ImagesTTL())
	require.Equal(t, 5*time.Minute, c.BreedsTTL())
	require.Equal(t, filepath.Join(dir, "data", "favorites.json"), c.Favorites.File)
}

func TestLoad_EnvBeatsYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDR", ":7000")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":8081\"\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7000", c.Server.Addr)
}

func TestValidate_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("duración inválida", func(t *testing.T) {
		t.Setenv("CACHE_IMAGES_TTL", "diez minutos")
		_, err := FromEnv()
		require.ErrorContains(t, err, "cache.images_ttl")
	})

	t.Run("duración no positiva", func(t *testing.T) {
		t.Setenv("DOG_API_TIMEOUT", "0s")
		_, err := FromEnv()
		require.ErrorContains(t, err, "upstream.timeout: must be positive")
	})

	t.Run("redis sin addr", func(t *testing.T) {
		t.Setenv("CACHE_KIND", "redis")
		_, err := FromEnv()
		require.ErrorContains(t, err, "cache.redis.addr")
	})

	t.Run("rate sin límite", func(t *testing.T) {
		t.Setenv("RATE_ENABLED", "1")
		t.Setenv("RATE_MAX_REQUESTS", "-1")
		_, err := FromEnv()
		require.ErrorContains(t, err, "rate.max_requests")
	})

	t.Run("cache desconocido", func(t *testing.T) {
		t.Setenv("CACHE_KIND", "memcached")
		_, err := FromEnv()
		require.ErrorContains(t, err, `unknown "memcached"`)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
