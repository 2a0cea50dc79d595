package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, status, quantity, sector_name, requestor_id, item_id, unit_id, created_at,
	COALESCE(decided_by, ''), decided_at`

// RequestRepo implementación de RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

func scanRequest(row pgx.Row) (*entity.TonerRequest, error) {
	var req entity.TonerRequest
	err := row.Scan(
		&req.ID, &req.Status, &req.Quantity, &req.SectorName, &req.RequestorID, &req.ItemID, &req.UnitID,
		&req.Timestamp, &req.DecidedBy, &req.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persiste una solicitud nueva.
func (r *RequestRepo) Create(ctx context.Context, req *entity.TonerRequest) error {
	query := `
		INSERT INTO toner_requests (id, status, quantity, sector_name, requestor_id, item_id, unit_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Status, req.Quantity, req.SectorName, req.RequestorID, req.ItemID, req.UnitID, req.Timestamp,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert request: %w", domain.ErrNotFound)
		}
		return wrapErr("insert request", err)
	}
	return nil
}

// GetByID obtiene una solicitud; nil si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id string) (*entity.TonerRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM toner_requests WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud bloqueando la fila hasta el fin de la tx.
func (r *RequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.TonerRequest, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM toner_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepo) get(ctx context.Context, query, id string) (*entity.TonerRequest, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get request", err)
	}
	return req, nil
}

// UpdateStatus fija el estado terminal y quién decidió.
func (r *RequestRepo) UpdateStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	query := `UPDATE toner_requests SET status = $2, decided_by = $3, decided_at = $4 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, status, decidedBy, decidedAt)
	if err != nil {
		return wrapErr("update request status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista solicitudes más recientes primero.
func (r *RequestRepo) List(ctx context.Context, filter repository.RequestFilter) ([]*entity.TonerRequest, error) {
	query := `
		SELECT ` + requestColumns + ` FROM toner_requests
		WHERE ($1 = '' OR unit_id = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.UnitID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, wrapErr("list requests", err)
	}
	defer rows.Close()

	list := make([]*entity.TonerRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, wrapErr("scan request", err)
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list requests", err)
	}
	return list, nil
}

// CountPending cuenta solicitudes PENDING; unitID vacío cuenta todas.
func (r *RequestRepo) CountPending(ctx context.Context, unitID string) (int, error) {
	query := `SELECT COUNT(*) FROM toner_requests WHERE status = 'PENDING' AND ($1 = '' OR unit_id = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, unitID).Scan(&n); err != nil {
		return 0, wrapErr("count pending requests", err)
	}
	return n, nil
}
