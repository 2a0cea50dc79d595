package repository

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// TransactionFilter filtros para el historial; Limit acota la lectura (más recientes primero).
type TransactionFilter struct {
	UnitID string
	ItemID string
	Limit  int
}

// TransactionRepository puerto append-only para el historial de cambios de cantidad.
type TransactionRepository interface {
	Append(ctx context.Context, tx *entity.Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
