// Package controllers agrupa todos los controllers HTTP.
// Es el "composition root" de controllers: server construye los services
// y los inyecta acá; router solo ve este struct.
package controllers

import (
	"github.com/dropDatabas3/breedbox/internal/http/controllers/breeds"
	"github.com/dropDatabas3/breedbox/internal/http/controllers/favorites"
	"github.com/dropDatabas3/breedbox/internal/http/controllers/health"
	svchealth "github.com/dropDatabas3/breedbox/internal/http/services/health"
)

// Deps son los services que consumen los controllers.
type Deps struct {
	Breeds    breeds.BreedService
	Favorites favorites.FavoritesService
	Health    svchealth.HealthService
}

// Controllers agrupa los controllers por dominio.
type Controllers struct {
	Breeds    *breeds.BreedsController
	Favorites *favorites.FavoritesController
	Health    *health.HealthController
}

// New crea todos los controllers.
func New(deps Deps) *Controllers {
	return &Controllers{
		Breeds:    breeds.NewBreedsController(deps.Breeds),
		Favorites: favorites.NewFavoritesController(deps.Favorites),
		Health:    health.NewHealthController(deps.Health),
	}
}
