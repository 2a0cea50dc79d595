package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// RequestFilter filtros para listar solicitudes.
type RequestFilter struct {
	UnitID string
	Status string
	Limit  int
	Offset int
}

// RequestRepository define el puerto de persistencia para TonerRequest.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.TonerRequest) error
	GetByID(ctx context.Context, id string) (*entity.TonerRequest, error)
	// GetForUpdate bloquea la solicitud hasta el fin de la transacción. Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.TonerRequest, error)
	UpdateStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error
	List(ctx context.Context, filter RequestFilter) ([]*entity.TonerRequest, error)
	// CountPending cuenta solicitudes PENDING; unitID vacío cuenta todas.
	CountPending(ctx context.Context, unitID string) (int, error)
}
