package inventory

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txRepo repository.TransactionRepository,
		requestRepo repository.RequestRepository,
	) error) error
}

// MetricsRecorder recibe los resultados de cada mutación. Puede ser nil.
type MetricsRecorder interface {
	StockMutation(txType string, quantity int)
	StockRejected(reason string)
}
