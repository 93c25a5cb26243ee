// Package logger expone un logger Zap singleton con scoping por contexto.
//
// # Diseño
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context Scoping: cada request lleva su propio logger "scoped" (request_id, method, path)
//     inyectado por el middleware de logging, sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//   - Levels: debug, info, warn, error (configurable via LOG_LEVEL).
//
// Los componentes de dominio (gateway de razas, store de favoritos) no dependen del singleton:
// reciben un *zap.Logger por constructor o lo sacan del contexto con From(ctx).
//
// # Uso
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "breedbox"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("GetAllBreeds"))
//	log.Info("breeds served from cache", logger.CacheKey("breeds"))
package logger
