package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct {
	db access
}

func entryKey(unitID, itemID string) string {
	return unitID + "|" + itemID
}

// inCatalog replica las FK de stock_entries: unidad e insumo deben existir.
func (st *state) inCatalog(unitID, itemID string) error {
	if _, ok := st.units[unitID]; !ok {
		return fmt.Errorf("unit %s: %w", unitID, domain.ErrNotFound)
	}
	if _, ok := st.items[itemID]; !ok {
		return fmt.Errorf("supply item %s: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func newEntry(unitID, itemID string, now time.Time) *entity.StockEntry {
	return &entity.StockEntry{
		ID:            ids.EntryID(unitID, itemID),
		UnitID:        unitID,
		ItemID:        itemID,
		MinStockAlert: entity.DefaultMinStockAlert,
		IsActive:      true,
		UpdatedAt:     now,
	}
}

// Get devuelve la entrada o una con cantidad 0 si no existe.
func (r *StockRepo) Get(_ context.Context, unitID, itemID string) (*entity.StockEntry, error) {
	var out *entity.StockEntry
	r.db.read(func(st *state) {
		if e, ok := st.entries[entryKey(unitID, itemID)]; ok {
			out = copyEntry(e)
		}
	})
	if out == nil {
		out = newEntry(unitID, itemID, time.Time{})
	}
	return out, nil
}

// GetForUpdate crea la entrada si falta; unidad o insumo desconocidos → ErrNotFound.
// El bloqueo lo da el mutex de Store.Run.
func (r *StockRepo) GetForUpdate(_ context.Context, unitID, itemID string) (*entity.StockEntry, error) {
	var out *entity.StockEntry
	err := r.db.write(func(st *state) error {
		key := entryKey(unitID, itemID)
		e, ok := st.entries[key]
		if !ok {
			if err := st.inCatalog(unitID, itemID); err != nil {
				return err
			}
			e = newEntry(unitID, itemID, time.Now())
			st.entries[key] = e
		}
		out = copyEntry(e)
		return nil
	})
	return out, err
}

// SetQuantity fija la cantidad, creando la entrada si no existe.
func (r *StockRepo) SetQuantity(_ context.Context, unitID, itemID string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	return r.db.write(func(st *state) error {
		key := entryKey(unitID, itemID)
		e, ok := st.entries[key]
		if !ok {
			if err := st.inCatalog(unitID, itemID); err != nil {
				return err
			}
			e = newEntry(unitID, itemID, time.Now())
			st.entries[key] = e
		}
		e.Quantity = quantity
		e.UpdatedAt = time.Now()
		return nil
	})
}

// List devuelve las entradas ordenadas por unidad e insumo.
func (r *StockRepo) List(_ context.Context, filter repository.StockFilter) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	r.db.read(func(st *state) {
		for _, e := range st.entries {
			if filter.UnitID != "" && e.UnitID != filter.UnitID {
				continue
			}
			if filter.ItemID != "" && e.ItemID != filter.ItemID {
				continue
			}
			out = append(out, copyEntry(e))
		}
	})
	sortEntries(out)
	return out, nil
}

// ListLowStock devuelve las entradas activas con quantity <= minStockAlert.
func (r *StockRepo) ListLowStock(_ context.Context, unitID string) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	r.db.read(func(st *state) {
		for _, e := range st.entries {
			if unitID != "" && e.UnitID != unitID {
				continue
			}
			if e.IsActive && e.IsLow() {
				out = append(out, copyEntry(e))
			}
		}
	})
	sortEntries(out)
	return out, nil
}

// Seed inserta entradas ausentes; las existentes no se tocan.
func (r *StockRepo) Seed(_ context.Context, entries []*entity.StockEntry) error {
	return r.db.write(func(st *state) error {
		for _, in := range entries {
			key := entryKey(in.UnitID, in.ItemID)
			if _, ok := st.entries[key]; ok {
				continue
			}
			if err := st.inCatalog(in.UnitID, in.ItemID); err != nil {
				return err
			}
			e := newEntry(in.UnitID, in.ItemID, time.Now())
			if in.MinStockAlert > 0 {
				e.MinStockAlert = in.MinStockAlert
			}
			st.entries[key] = e
		}
		return nil
	})
}

// UpdateMinStockAlert cambia el umbral; la entrada se crea si no existía.
func (r *StockRepo) UpdateMinStockAlert(_ context.Context, unitID, itemID string, minStockAlert int) error {
	return r.db.write(func(st *state) error {
		key := entryKey(unitID, itemID)
		e, ok := st.entries[key]
		if !ok {
			if err := st.inCatalog(unitID, itemID); err != nil {
				return err
			}
			e = newEntry(unitID, itemID, time.Now())
			st.entries[key] = e
		}
		e.MinStockAlert = minStockAlert
		e.UpdatedAt = time.Now()
		return nil
	})
}

func sortEntries(list []*entity.StockEntry) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].UnitID != list[j].UnitID {
			return list[i].UnitID < list[j].UnitID
		}
		return list[i].ItemID < list[j].ItemID
	})
}
