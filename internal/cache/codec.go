package cache

import (
	"time"

	json "github.com/goccy/go-json"
)

// GetJSON lee key y la decodifica en T.
// Un valor que no decodifica se trata como miss (entrada de otra versión, basura en redis, etc).
func GetJSON[T any](c Cache, key string) (T, bool) {
	var out T
	raw, ok := c.Get(key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

// SetJSON codifica v y lo guarda bajo key con el TTL dado.
func SetJSON[T any](c Cache, key string, v T, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(key, raw, ttl)
	return nil
}
