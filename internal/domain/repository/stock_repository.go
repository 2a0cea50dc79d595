package repository

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// StockFilter filtros para listar entradas de stock. Campos vacíos no filtran.
type StockFilter struct {
	UnitID string
	ItemID string
}

// StockRepository define el puerto para consultar/actualizar stock por unidad+insumo.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la entrada o una con cantidad 0 si no existe.
	Get(ctx context.Context, unitID, itemID string) (*entity.StockEntry, error)
	// GetForUpdate crea la entrada si falta y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, unitID, itemID string) (*entity.StockEntry, error)
	SetQuantity(ctx context.Context, unitID, itemID string, quantity int) error
	List(ctx context.Context, filter StockFilter) ([]*entity.StockEntry, error)
	ListLowStock(ctx context.Context, unitID string) ([]*entity.StockEntry, error)
	// Seed inserta entradas con cantidad 0; las existentes no se tocan.
	Seed(ctx context.Context, entries []*entity.StockEntry) error
	UpdateMinStockAlert(ctx context.Context, unitID, itemID string, minStockAlert int) error
}
