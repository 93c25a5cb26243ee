// Package favorites contiene el controller de /api/favorites.
package favorites

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/breedbox/internal/favorites"
	dto "github.com/dropDatabas3/breedbox/internal/http/dto/favorites"
	httperrors "github.com/dropDatabas3/breedbox/internal/http/errors"
	"github.com/dropDatabas3/breedbox/internal/http/helpers"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
)

// FavoritesService es la vista del store que usa el controller.
type FavoritesService interface {
	List() []string
	Add(breed string) error
	Remove(breed string) error
}

// FavoritesController maneja las rutas de favoritos.
type FavoritesController struct {
	service FavoritesService
}

// NewFavoritesController crea el controller.
func NewFavoritesController(service FavoritesService) *FavoritesController {
	return &FavoritesController{service: service}
}

// List maneja GET /api/favorites
func (c *FavoritesController) List(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.List())
}

// Add maneja POST /api/favorites
func (c *FavoritesController) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.AddFavoriteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteErrorCtx(ctx, w, err)
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteErrorCtx(ctx, w, err)
		return
	}

	if err := c.service.Add(req.Breed); err != nil {
		httperrors.WriteErrorCtx(ctx, w, mapError(err))
		return
	}

	logger.From(ctx).Info("favorite added", logger.Layer("controller"), logger.Breed(req.Breed))
	helpers.WriteJSON(w, http.StatusCreated, dto.MessageResponse{
		Message: fmt.Sprintf("Breed '%s' added to favorites", req.Breed),
	})
}

// Remove maneja DELETE /api/favorites/{breed}
func (c *FavoritesController) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	breed := helpers.PathParam(r, "breed")

	if err := c.service.Remove(breed); err != nil {
		httperrors.WriteErrorCtx(ctx, w, mapError(err))
		return
	}

	logger.From(ctx).Info("favorite removed", logger.Layer("controller"), logger.Breed(breed))
	helpers.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Breed '%s' removed from favorites", breed),
	})
}

func mapError(err error) error {
	if errors.Is(err, favorites.ErrInvalidArgument) {
		return httperrors.ErrInvalidBreed.WithCause(err)
	}
	return err
}
