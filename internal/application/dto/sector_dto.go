package dto

import "time"

// CreateSectorRequest entrada para crear un sector dentro de una unidad.
type CreateSectorRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=120"`
}

// UpdateSectorRequest entrada para renombrar un sector.
type UpdateSectorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unit_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SectorListResponse lista de sectores.
type SectorListResponse struct {
	Items []SectorResponse `json:"items"`
}
