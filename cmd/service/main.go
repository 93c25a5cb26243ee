package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/breedbox/internal/config"
	"github.com/dropDatabas3/breedbox/internal/http/server"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
)

const serviceName = "breedbox"

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

// resolveConfig elige la fuente: -env => solo env; si no, -config, $CONFIG_PATH o configs/config.yaml.
// Sin ningún YAML disponible cae a env.
func resolveConfig(path string, envOnly bool) (*config.Config, string, error) {
	if envOnly {
		cfg, err := config.FromEnv()
		return cfg, "env", err
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" && fileExists("configs/config.yaml") {
		path = "configs/config.yaml"
	}
	if path == "" {
		cfg, err := config.FromEnv()
		return cfg, "env", err
	}
	cfg, err := config.Load(path)
	return cfg, "yaml:" + path, err
}

// printConfigSummary imprime la config efectiva como YAML, sin secretos.
func printConfigSummary(c *config.Config) error {
	masked := *c
	if masked.Cache.Redis.Password != "" {
		masked.Cache.Redis.Password = "********"
	}
	out, err := yaml.Marshal(&masked)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
		flagEnvOnly    = flag.Bool("env", false, "usar SOLO env (y .env si se pasa -env-file)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
		flagPrint      = flag.Bool("print-config", false, "imprime config efectiva y termina")
	)
	flag.Parse()

	dotenvLoaded := false
	if *flagEnvFile != "" && fileExists(*flagEnvFile) {
		if err := godotenv.Load(*flagEnvFile); err != nil {
			return fmt.Errorf("dotenv %s: %w", *flagEnvFile, err)
		}
		dotenvLoaded = true
	}

	cfg, mode, err := resolveConfig(*flagConfigPath, *flagEnvOnly)
	if err != nil {
		return err
	}
	if *flagPrint {
		return printConfigSummary(cfg)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: serviceName,
		Version:     cfg.App.Version,
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if dotenvLoaded {
		log.Debug("dotenv loaded", logger.File(*flagEnvFile))
	}

	handler, cleanup, err := server.BuildHandler(server.Deps{Config: cfg, Logger: log})
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", logger.Err(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// el cliente upstream ya tiene su timeout; dejamos margen
		WriteTimeout: cfg.UpstreamTimeout() + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("service up",
			zap.String("mode", mode),
			zap.String("addr", cfg.Server.Addr),
			zap.String("cache", cfg.Cache.Kind),
			zap.String("upstream", cfg.Upstream.BaseURL),
			logger.File(cfg.Favorites.File),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("bye")
	return nil
}
