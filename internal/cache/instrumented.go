package cache

import (
	"github.com/dropDatabas3/breedbox/internal/metrics"
)

// instrumented cuenta hits/misses en prometheus sin cambiar la semántica del cache.
type instrumented struct {
	Client
	name string
}

// Instrument envuelve c registrando cada Get como hit o miss bajo el label name.
func Instrument(c Client, name string) Client {
	return &instrumented{Client: c, name: name}
}

func (i *instrumented) Get(key string) ([]byte, bool) {
	v, ok := i.Client.Get(key)
	metrics.RecordCacheLookup(i.name, ok)
	return v, ok
}
