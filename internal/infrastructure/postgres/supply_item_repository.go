package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.SupplyItemRepository = (*SupplyItemRepo)(nil)

// SupplyItemRepo implementación del catálogo de insumos sobre PostgreSQL.
type SupplyItemRepo struct {
	pool *pgxpool.Pool
}

// NewSupplyItemRepository construye el adaptador.
func NewSupplyItemRepository(pool *pgxpool.Pool) *SupplyItemRepo {
	return &SupplyItemRepo{pool: pool}
}

// Create persiste un insumo.
func (r *SupplyItemRepo) Create(ctx context.Context, item *entity.SupplyItem) error {
	query := `
		INSERT INTO supply_items (id, model, color, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, item.ID, item.Model, item.Color, item.Active, item.CreatedAt, item.UpdatedAt)
	return wrapErr("insert supply item", err)
}

// GetByID obtiene un insumo; nil si no existe.
func (r *SupplyItemRepo) GetByID(ctx context.Context, id string) (*entity.SupplyItem, error) {
	query := `SELECT id, model, color, active, created_at, updated_at FROM supply_items WHERE id = $1`
	var it entity.SupplyItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&it.ID, &it.Model, &it.Color, &it.Active, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get supply item", err)
	}
	return &it, nil
}

// Update actualiza modelo, color y estado.
func (r *SupplyItemRepo) Update(ctx context.Context, item *entity.SupplyItem) error {
	query := `UPDATE supply_items SET model = $2, color = $3, active = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, item.ID, item.Model, item.Color, item.Active, item.UpdatedAt)
	if err != nil {
		return wrapErr("update supply item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los insumos por modelo y color.
func (r *SupplyItemRepo) List(ctx context.Context, onlyActive bool) ([]*entity.SupplyItem, error) {
	query := `
		SELECT id, model, color, active, created_at, updated_at FROM supply_items
		WHERE (NOT $1 OR active)
		ORDER BY model, color`
	rows, err := r.pool.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, wrapErr("list supply items", err)
	}
	defer rows.Close()

	list := make([]*entity.SupplyItem, 0)
	for rows.Next() {
		var it entity.SupplyItem
		if err := rows.Scan(&it.ID, &it.Model, &it.Color, &it.Active, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, wrapErr("scan supply item", err)
		}
		list = append(list, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list supply items", err)
	}
	return list, nil
}

// Delete elimina el insumo y sus entradas; con historial devuelve ErrConflict.
func (r *SupplyItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM supply_items WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete supply item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
