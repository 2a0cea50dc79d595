package entity

import "time"

// Sector área de una unidad (ej. Farmacia, Recepción) desde donde se piden insumos.
type Sector struct {
	ID        string
	UnitID    string
	Name      string
	CreatedAt time.Time
}
