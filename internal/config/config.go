package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env     string `yaml:"app_env"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	// API externa de razas (dog.ceo)
	Upstream struct {
		BaseURL   string `yaml:"base_url"`
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"upstream"`

	Cache struct {
		Kind      string `yaml:"kind"` // memory | redis
		BreedsTTL string `yaml:"breeds_ttl"`
		ImagesTTL string `yaml:"images_ttl"`
		Redis     struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			CleanupInterval string `yaml:"cleanup_interval"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Favorites struct {
		File string `yaml:"file"`
	} `yaml:"favorites"`

	// Rate limit por IP sobre /api. Usa el mismo backend que el cache.
	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`
}

// Load lee el YAML en path, aplica defaults, overrides por env y valida.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := c.finalize(); err != nil {
		return nil, err
	}

	// Ruta de favoritos relativa => relativa al directorio del YAML
	if p := strings.TrimSpace(c.Favorites.File); p != "" && !filepath.IsAbs(p) && !c.favoritesFromEnv() {
		c.Favorites.File = filepath.Clean(filepath.Join(filepath.Dir(path), p))
	}
	return &c, nil
}

// FromEnv arma la config solo desde variables de entorno (sin YAML).
func FromEnv() (*Config, error) {
	var c Config
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) finalize() error {
	c.applyDefaults()
	// Overrides por env
	c.applyEnvOverrides()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.CORSAllowedOrigins == nil {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "https://dog.ceo/api"
	}
	if c.Upstream.Timeout == "" {
		c.Upstream.Timeout = "10s"
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "breedbox/1.0"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.BreedsTTL == "" {
		c.Cache.BreedsTTL = "5m"
	}
	if c.Cache.ImagesTTL == "" {
		c.Cache.ImagesTTL = "10m"
	}
	if c.Cache.Memory.CleanupInterval == "" {
		c.Cache.Memory.CleanupInterval = "1m"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "breedbox"
	}
	if c.Favorites.File == "" {
		c.Favorites.File = "favorites.json"
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 120
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
// Las duraciones se guardan como string y se validan en Validate.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("SERVICE_VERSION"); ok {
		c.App.Version = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	} else if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("SERVER_SHUTDOWN_TIMEOUT"); ok {
		c.Server.ShutdownTimeout = v
	}

	// UPSTREAM
	if v, ok := getEnvStr("DOG_API_BASE_URL"); ok {
		c.Upstream.BaseURL = v
	}
	if v, ok := getEnvStr("DOG_API_TIMEOUT"); ok {
		c.Upstream.Timeout = v
	}
	if v, ok := getEnvStr("DOG_API_USER_AGENT"); ok {
		c.Upstream.UserAgent = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("CACHE_BREEDS_TTL"); ok {
		c.Cache.BreedsTTL = v
	}
	if v, ok := getEnvStr("CACHE_IMAGES_TTL"); ok {
		c.Cache.ImagesTTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("CACHE_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// FAVORITES
	if v, ok := getEnvStr("FAVORITES_FILE"); ok {
		c.Favorites.File = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvStr("RATE_WINDOW"); ok {
		c.Rate.Window = v
	}
	if v, ok := getEnvInt("RATE_MAX_REQUESTS"); ok {
		c.Rate.MaxRequests = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
}

func (c *Config) favoritesFromEnv() bool {
	_, ok := getEnvStr("FAVORITES_FILE")
	return ok
}

// Validate revisa duraciones y valores cerrados. Devuelve todos los problemas juntos.
func (c *Config) Validate() error {
	var errs []error

	durations := []struct {
		name, value string
	}{
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"upstream.timeout", c.Upstream.Timeout},
		{"cache.breeds_ttl", c.Cache.BreedsTTL},
		{"cache.images_ttl", c.Cache.ImagesTTL},
		{"cache.memory.cleanup_interval", c.Cache.Memory.CleanupInterval},
		{"rate.window", c.Rate.Window},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			continue
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %s", d.name, d.value))
		}
	}

	switch c.Cache.Kind {
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			errs = append(errs, errors.New("cache.redis.addr: required when cache.kind=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.kind: unknown %q (memory|redis)", c.Cache.Kind))
	}

	if c.Rate.Enabled && c.Rate.MaxRequests <= 0 {
		errs = append(errs, fmt.Errorf("rate.max_requests: must be positive, got %d", c.Rate.MaxRequests))
	}

	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		errs = append(errs, errors.New("upstream.base_url: required"))
	}
	if strings.TrimSpace(c.Favorites.File) == "" {
		errs = append(errs, errors.New("favorites.file: required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ---- Duraciones ya validadas ----

func mustDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func (c *Config) ShutdownTimeout() time.Duration { return mustDur(c.Server.ShutdownTimeout) }
func (c *Config) UpstreamTimeout() time.Duration { return mustDur(c.Upstream.Timeout) }
func (c *Config) BreedsTTL() time.Duration { return mustDur(c.Cache.BreedsTTL) }
func (c *Config) ImagesTTL() time.Duration { return mustDur(c.Cache.ImagesTTL) }
func (c *Config) CleanupInterval() time.Duration { return mustDur(c.Cache.Memory.CleanupInterval) }
func (c *Config) RateWindow() time.Duration { return mustDur(c.Rate.Window) }
