package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrom_UsesScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core).With(RequestID("abc123"))

	ctx := ToContext(context.Background(), scoped)
	From(ctx).Info("hola", Breed("beagle"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "hola", entry.Message)
	require.Equal(t, "abc123", entry.ContextMap()["request_id"])
	require.Equal(t, "beagle", entry.ContextMap()["breed"])
}

func TestFrom_FallsBackToSingleton(t *testing.T) {
	require.Same(t, L(), From(context.Background()))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestReplace_RestoresPrevious(t *testing.T) {
	prev := L()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	Named("favorites").Info("guardado")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "favorites", logs.All()[0].LoggerName)

	restore()
	require.Same(t, prev, L())
}
