package helpers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// PathParam retorna el parámetro de ruta name ya des-escapado.
// chi rutea sobre RawPath cuando existe, así que "%20beagle" llega escapado.
func PathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
