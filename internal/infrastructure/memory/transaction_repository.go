package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo historial append-only en memoria.
type TransactionRepo struct {
	db access
}

// Append agrega un registro al historial.
func (r *TransactionRepo) Append(_ context.Context, tx *entity.Transaction) error {
	return r.db.write(func(st *state) error {
		st.transactions = append(st.transactions, copyTransaction(tx))
		return nil
	})
}

// List devuelve el historial más reciente primero; a igual timestamp, el último insertado primero.
func (r *TransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	r.db.read(func(st *state) {
		for i := len(st.transactions) - 1; i >= 0; i-- {
			t := st.transactions[i]
			if filter.UnitID != "" && t.UnitID != filter.UnitID {
				continue
			}
			if filter.ItemID != "" && t.ItemID != filter.ItemID {
				continue
			}
			out = append(out, copyTransaction(t))
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
