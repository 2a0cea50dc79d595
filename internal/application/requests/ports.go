package requests

import (
	"context"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
)

// PendingCache guarda el contador de solicitudes pendientes por unidad ("" = todas).
// GetPending devuelve la versión leída; SetPending escribe bajo esa misma versión, así un
// Invalidate intermedio deja el valor recalculado fuera de la clave vigente.
type PendingCache interface {
	GetPending(ctx context.Context, unitID string) (count int, version int64, ok bool, err error)
	SetPending(ctx context.Context, unitID string, version int64, count int) error
	Invalidate(ctx context.Context) error
}

// MetricsRecorder añade las decisiones al registro de mutaciones de stock. Puede ser nil.
type MetricsRecorder interface {
	inventory.MetricsRecorder
	RequestSubmitted()
	RequestDecided(decision, outcome string)
}
