package dto

import "time"

// CreateSupplyItemRequest entrada para crear un insumo del catálogo.
type CreateSupplyItemRequest struct {
	Model string `json:"model" validate:"required,min=1,max=120"`
	Color string `json:"color" validate:"required,oneof=Black Cyan Magenta Yellow"`
}

// UpdateSupplyItemRequest entrada para actualizar un insumo.
type UpdateSupplyItemRequest struct {
	Model  *string `json:"model" validate:"omitempty,min=1,max=120"`
	Color  *string `json:"color" validate:"omitempty,oneof=Black Cyan Magenta Yellow"`
	Active *bool   `json:"active"`
}

// SupplyItemResponse salida de un insumo.
type SupplyItemResponse struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Color     string    `json:"color"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplyItemListResponse lista de insumos.
type SupplyItemListResponse struct {
	Items []SupplyItemResponse `json:"items"`
}
