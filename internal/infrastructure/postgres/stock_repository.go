package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, unit_id, item_id, quantity, min_stock_alert, is_active, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	if err := row.Scan(&e.ID, &e.UnitID, &e.ItemID, &e.Quantity, &e.MinStockAlert, &e.IsActive, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Get obtiene la entrada; si no existe devuelve una con cantidad 0 sin persistirla.
func (r *StockRepo) Get(ctx context.Context, unitID, itemID string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_entries WHERE unit_id = $1 AND item_id = $2`
	e, err := scanEntry(r.q.QueryRow(ctx, query, unitID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{
				ID:            ids.EntryID(unitID, itemID),
				UnitID:        unitID,
				ItemID:        itemID,
				MinStockAlert: entity.DefaultMinStockAlert,
				IsActive:      true,
			}, nil
		}
		return nil, wrapErr("get stock", err)
	}
	return e, nil
}

// GetForUpdate crea la entrada si falta y la bloquea (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, unitID, itemID string) (*entity.StockEntry, error) {
	if err := r.ensure(ctx, unitID, itemID); err != nil {
		return nil, err
	}
	query := `SELECT ` + stockColumns + ` FROM stock_entries WHERE unit_id = $1 AND item_id = $2 FOR UPDATE`
	e, err := scanEntry(r.q.QueryRow(ctx, query, unitID, itemID))
	if err != nil {
		return nil, wrapErr("get stock for update", err)
	}
	return e, nil
}

// ensure inserta la entrada con cantidad 0 si no existe. Unidad o insumo desconocidos → ErrNotFound.
func (r *StockRepo) ensure(ctx context.Context, unitID, itemID string) error {
	query := `
		INSERT INTO stock_entries (id, unit_id, item_id, quantity, min_stock_alert, is_active, updated_at)
		VALUES ($1, $2, $3, 0, $4, TRUE, now())
		ON CONFLICT (unit_id, item_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, ids.EntryID(unitID, itemID), unitID, itemID, entity.DefaultMinStockAlert)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("ensure stock %s/%s: %w", unitID, itemID, domain.ErrNotFound)
		}
		return wrapErr("ensure stock", err)
	}
	return nil
}

// SetQuantity fija la cantidad. El CHECK (quantity >= 0) se traduce a ErrInsufficientStock.
func (r *StockRepo) SetQuantity(ctx context.Context, unitID, itemID string, quantity int) error {
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	query := `
		INSERT INTO stock_entries (id, unit_id, item_id, quantity, min_stock_alert, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, now())
		ON CONFLICT (unit_id, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, ids.EntryID(unitID, itemID), unitID, itemID, quantity, entity.DefaultMinStockAlert)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("set stock quantity: %w", domain.ErrNotFound)
		}
		return wrapErr("set stock quantity", err)
	}
	return nil
}

// List lista entradas ordenadas por unidad e insumo.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock_entries
		WHERE ($1 = '' OR unit_id = $1) AND ($2 = '' OR item_id = $2)
		ORDER BY unit_id, item_id`
	return r.query(ctx, "list stock", query, filter.UnitID, filter.ItemID)
}

// ListLowStock lista entradas activas con quantity <= min_stock_alert.
func (r *StockRepo) ListLowStock(ctx context.Context, unitID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + ` FROM stock_entries
		WHERE is_active AND quantity <= min_stock_alert AND ($1 = '' OR unit_id = $1)
		ORDER BY unit_id, item_id`
	return r.query(ctx, "list low stock", query, unitID)
}

func (r *StockRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.StockEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}

// Seed inserta en lote las entradas ausentes con cantidad 0.
func (r *StockRepo) Seed(ctx context.Context, entries []*entity.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_entries (id, unit_id, item_id, quantity, min_stock_alert, is_active, updated_at)
		VALUES ($1, $2, $3, 0, $4, TRUE, now())
		ON CONFLICT (unit_id, item_id) DO NOTHING`
	batch := &pgx.Batch{}
	for _, e := range entries {
		minAlert := e.MinStockAlert
		if minAlert <= 0 {
			minAlert = entity.DefaultMinStockAlert
		}
		batch.Queue(query, ids.EntryID(e.UnitID, e.ItemID), e.UnitID, e.ItemID, minAlert)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("seed stock: %w", domain.ErrNotFound)
			}
			return wrapErr("seed stock", err)
		}
	}
	return nil
}

// UpdateMinStockAlert cambia el umbral; la entrada se crea si no existía.
func (r *StockRepo) UpdateMinStockAlert(ctx context.Context, unitID, itemID string, minStockAlert int) error {
	query := `
		INSERT INTO stock_entries (id, unit_id, item_id, quantity, min_stock_alert, is_active, updated_at)
		VALUES ($1, $2, $3, 0, $4, TRUE, now())
		ON CONFLICT (unit_id, item_id)
		DO UPDATE SET min_stock_alert = EXCLUDED.min_stock_alert, updated_at = now()`
	_, err := r.q.Exec(ctx, query, ids.EntryID(unitID, itemID), unitID, itemID, minStockAlert)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update min stock alert: %w", domain.ErrNotFound)
		}
		return wrapErr("update min stock alert", err)
	}
	return nil
}
