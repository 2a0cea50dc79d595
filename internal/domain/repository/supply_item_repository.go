package repository

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// SupplyItemRepository define el puerto de persistencia para el catálogo de insumos.
type SupplyItemRepository interface {
	Create(ctx context.Context, item *entity.SupplyItem) error
	GetByID(ctx context.Context, id string) (*entity.SupplyItem, error)
	Update(ctx context.Context, item *entity.SupplyItem) error
	List(ctx context.Context, onlyActive bool) ([]*entity.SupplyItem, error)
	Delete(ctx context.Context, id string) error
}
