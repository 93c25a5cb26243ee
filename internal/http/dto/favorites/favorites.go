// Package favorites contiene DTOs para los endpoints de favoritos.
package favorites

// AddFavoriteRequest es el body de POST /api/favorites.
type AddFavoriteRequest struct {
	Breed string `json:"breed" validate:"required"`
}

// MessageResponse es la respuesta de alta y baja.
type MessageResponse struct {
	Message string `json:"message"`
}
