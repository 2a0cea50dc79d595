package entity

import "time"

// Unit representa una unidad hospitalaria (sede) que mantiene su propio stock de insumos.
type Unit struct {
	ID           string
	Name         string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
