package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación de SectorRepository sobre PostgreSQL.
type SectorRepo struct {
	pool *pgxpool.Pool
}

// NewSectorRepository construye el adaptador.
func NewSectorRepository(pool *pgxpool.Pool) *SectorRepo {
	return &SectorRepo{pool: pool}
}

// Create persiste un sector; la unidad debe existir.
func (r *SectorRepo) Create(ctx context.Context, sector *entity.Sector) error {
	query := `INSERT INTO sectors (id, unit_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, sector.ID, sector.UnitID, sector.Name, sector.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert sector: %w", domain.ErrNotFound)
		}
		return wrapErr("insert sector", err)
	}
	return nil
}

// GetByID obtiene un sector; nil si no existe.
func (r *SectorRepo) GetByID(ctx context.Context, id string) (*entity.Sector, error) {
	query := `SELECT id, unit_id, name, created_at FROM sectors WHERE id = $1`
	var s entity.Sector
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.UnitID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get sector", err)
	}
	return &s, nil
}

// Update cambia el nombre del sector.
func (r *SectorRepo) Update(ctx context.Context, sector *entity.Sector) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE sectors SET name = $2 WHERE id = $1`, sector.ID, sector.Name)
	if err != nil {
		return wrapErr("update sector", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista sectores por nombre; unitID vacío devuelve todos.
func (r *SectorRepo) List(ctx context.Context, unitID string) ([]*entity.Sector, error) {
	query := `SELECT id, unit_id, name, created_at FROM sectors WHERE ($1 = '' OR unit_id = $1) ORDER BY name`
	rows, err := r.pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, wrapErr("list sectors", err)
	}
	defer rows.Close()

	list := make([]*entity.Sector, 0)
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.UnitID, &s.Name, &s.CreatedAt); err != nil {
			return nil, wrapErr("scan sector", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list sectors", err)
	}
	return list, nil
}

// Delete elimina el sector; los usuarios asignados quedan sin sector.
func (r *SectorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sectors WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete sector", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
