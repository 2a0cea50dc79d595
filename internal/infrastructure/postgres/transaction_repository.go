package postgres

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo historial append-only de cambios de cantidad.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Append inserta un registro; nunca se actualiza ni se borra.
func (r *TransactionRepo) Append(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, correlation_id, type, quantity, reason, user_id, item_id, unit_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CorrelationID, t.Type, t.Quantity, t.Reason, t.UserID, t.ItemID, t.UnitID, t.Timestamp,
	)
	return wrapErr("append transaction", err)
}

// List devuelve el historial más reciente primero; seq desempata registros del mismo instante.
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT id, correlation_id, type, quantity, reason, user_id, item_id, unit_id, created_at
		FROM transactions
		WHERE ($1 = '' OR unit_id = $1) AND ($2 = '' OR item_id = $2)
		ORDER BY created_at DESC, seq DESC
		LIMIT $3`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, query, filter.UnitID, filter.ItemID, limit)
	if err != nil {
		return nil, wrapErr("list transactions", err)
	}
	defer rows.Close()

	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.CorrelationID, &t.Type, &t.Quantity, &t.Reason, &t.UserID, &t.ItemID, &t.UnitID, &t.Timestamp,
		); err != nil {
			return nil, wrapErr("scan transaction", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list transactions", err)
	}
	return list, nil
}
