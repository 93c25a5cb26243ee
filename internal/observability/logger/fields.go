package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

// Route es el patrón chi que resolvió el request (ej: /api/breeds/{breed}/images/{quantity}).
func Route(v string) zap.Field { return zap.String("route", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

func Bytes(v int) zap.Field { return zap.Int("bytes", v) }

func ClientIP(v string) zap.Field { return zap.String("client_ip", v) }

func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// Breed crea un campo para el nombre de raza (tal cual lo mandó el cliente).
func Breed(v string) zap.Field { return zap.String("breed", v) }

// Quantity crea un campo para la cantidad de imágenes pedidas.
func Quantity(v int) zap.Field { return zap.Int("quantity", v) }

// CacheKey crea un campo para la key de cache consultada.
func CacheKey(v string) zap.Field { return zap.String("cache_key", v) }

// Upstream crea un campo para la URL/endpoint del API externo.
func Upstream(v string) zap.Field { return zap.String("upstream", v) }

// File crea un campo para una ruta de archivo.
func File(v string) zap.Field { return zap.String("file", v) }

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }

func Op(v string) zap.Field { return zap.String("op", v) }

// Layer: handler, service, repository.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func Err(err error) zap.Field { return zap.Error(err) }

// =================================================================================
// CAMPOS GENÉRICOS
// =================================================================================

func Count(v int) zap.Field { return zap.Int("count", v) }

func Key(v string) zap.Field { return zap.String("key", v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }

func String(key, v string) zap.Field { return zap.String(key, v) }

func Int(key string, v int) zap.Field { return zap.Int(key, v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
