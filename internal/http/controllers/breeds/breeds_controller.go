// Package breeds contiene el controller de /api/breeds.
package breeds

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/breedbox/internal/breeds"
	httperrors "github.com/dropDatabas3/breedbox/internal/http/errors"
	"github.com/dropDatabas3/breedbox/internal/http/helpers"
	"github.com/dropDatabas3/breedbox/internal/observability/logger"
)

// BreedService es lo que el controller necesita del gateway.
type BreedService interface {
	GetAllBreeds(ctx context.Context) ([]string, error)
	GetBreedImages(ctx context.Context, breed string, quantity int) ([]string, error)
}

// BreedsController maneja las rutas de razas.
type BreedsController struct {
	service BreedService
}

// NewBreedsController crea el controller.
func NewBreedsController(service BreedService) *BreedsController {
	return &BreedsController{service: service}
}

// List maneja GET /api/breeds
func (c *BreedsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := c.service.GetAllBreeds(ctx)
	if err != nil {
		httperrors.WriteErrorCtx(ctx, w, mapError(err, "Failed to fetch breeds from external API"))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, list)
}

// Images maneja GET /api/breeds/{breed}/images/{quantity}
func (c *BreedsController) Images(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	breed := helpers.PathParam(r, "breed")
	if strings.TrimSpace(breed) == "" {
		httperrors.WriteErrorCtx(ctx, w, httperrors.ErrInvalidParameter.WithDetail("breed is required"))
		return
	}

	rawQty := helpers.PathParam(r, "quantity")
	quantity, err := strconv.Atoi(rawQty)
	if err != nil || quantity <= 0 {
		httperrors.WriteErrorCtx(ctx, w, httperrors.ErrInvalidParameter.
			WithDetail("quantity must be a positive integer, got '"+rawQty+"'"))
		return
	}

	images, err := c.service.GetBreedImages(ctx, breed, quantity)
	if err != nil {
		logger.From(ctx).Debug("breed images failed",
			logger.Layer("controller"),
			logger.Breed(breed),
			logger.Quantity(quantity),
			logger.Err(err),
		)
		httperrors.WriteErrorCtx(ctx, w, mapError(err, "Failed to fetch breed images from external API"))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, images)
}

// mapError traduce errores del gateway a AppError.
func mapError(err error, unavailableMsg string) error {
	var notFound *breeds.BreedNotFoundError
	switch {
	case errors.As(err, &notFound):
		return httperrors.ErrBreedNotFound.WithMessage(notFound.Error()).WithCause(err)
	case errors.Is(err, breeds.ErrBreedNotFound):
		return httperrors.ErrBreedNotFound.WithCause(err)
	case errors.Is(err, breeds.ErrServiceUnavailable):
		return httperrors.ErrServiceUnavailable.WithMessage(unavailableMsg).WithCause(err)
	default:
		return err
	}
}
