package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsDriver(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	require.Equal(t, "memory", c.Driver())

	srv := miniredis.RunT(t)
	rc, err := New(Config{Driver: "Redis", Addr: srv.Addr(), Prefix: "bb"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	require.Equal(t, "redis", rc.Driver())

	_, err = New(Config{Driver: "memcached"})
	require.Error(t, err)
}

func TestJSONCodec_RoundTripsBreedLists(t *testing.T) {
	c, err := New(Config{Driver: "memory"})
	require.NoError(t, err)

	require.NoError(t, SetJSON(c, "breeds", []string{"akita", "beagle"}, time.Minute))

	got, ok := GetJSON[[]string](c, "breeds")
	require.True(t, ok)
	require.Equal(t, []string{"akita", "beagle"}, got)

	_, ok = GetJSON[[]string](c, "missing")
	require.False(t, ok)
}

func TestJSONCodec_UndecodableIsMiss(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)

	c.Set("breeds", []byte("{not json"), time.Minute)
	_, ok := GetJSON[[]string](c, "breeds")
	require.False(t, ok)
}

func TestInstrument_KeepsSemantics(t *testing.T) {
	base, err := New(Config{})
	require.NoError(t, err)
	c := Instrument(base, "test")

	_, ok := c.Get("k")
	require.False(t, ok)

	c.Set("k", []byte("v"), time.Minute)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", string(v))
	require.Equal(t, "memory", c.Driver())
}
