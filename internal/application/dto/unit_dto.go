package dto

import "time"

// CreateUnitRequest entrada para crear una unidad.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// UpdateUnitRequest entrada para actualizar una unidad.
type UpdateUnitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,min=0"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UnitListResponse lista de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
}
