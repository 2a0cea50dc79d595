package repository

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// SectorRepository define el puerto de persistencia para Sector.
type SectorRepository interface {
	Create(ctx context.Context, sector *entity.Sector) error
	GetByID(ctx context.Context, id string) (*entity.Sector, error)
	Update(ctx context.Context, sector *entity.Sector) error
	// List devuelve los sectores de la unidad; unitID vacío devuelve todos.
	List(ctx context.Context, unitID string) ([]*entity.Sector, error)
	Delete(ctx context.Context, id string) error
}
