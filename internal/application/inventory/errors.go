package inventory

import (
	"errors"

	"github.com/jhoicas/Toner-api/internal/domain"
)

// rejectionReason etiqueta corta del motivo de rechazo para métricas.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "other"
	}
}
