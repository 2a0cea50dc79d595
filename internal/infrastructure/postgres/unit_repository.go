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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	pool *pgxpool.Pool
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepo {
	return &UnitRepo{pool: pool}
}

// Create persiste una nueva unidad.
func (r *UnitRepo) Create(ctx context.Context, unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, name, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, unit.ID, unit.Name, unit.DisplayOrder, unit.CreatedAt, unit.UpdatedAt)
	return wrapErr("insert unit", err)
}

// GetByID obtiene una unidad por ID; nil si no existe.
func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	query := `SELECT id, name, display_order, created_at, updated_at FROM units WHERE id = $1`
	var u entity.Unit
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.DisplayOrder, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get unit", err)
	}
	return &u, nil
}

// Update actualiza una unidad existente.
func (r *UnitRepo) Update(ctx context.Context, unit *entity.Unit) error {
	query := `UPDATE units SET name = $2, display_order = $3, updated_at = $4 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, unit.ID, unit.Name, unit.DisplayOrder, unit.UpdatedAt)
	if err != nil {
		return wrapErr("update unit", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las unidades por display_order y nombre.
func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	query := `SELECT id, name, display_order, created_at, updated_at FROM units ORDER BY display_order, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list units", err)
	}
	defer rows.Close()

	list := make([]*entity.Unit, 0)
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.DisplayOrder, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, wrapErr("scan unit", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list units", err)
	}
	return list, nil
}

// Delete elimina la unidad; entradas y sectores caen en cascada.
// Con historial o solicitudes la FK RESTRICT lo impide (ErrConflict).
func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete unit", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
