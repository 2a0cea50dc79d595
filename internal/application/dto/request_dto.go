package dto

import (
	"time"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// SubmitRequestRequest body para POST /api/requests.
// UnitID se ignora para usuarios acotados a su unidad.
type SubmitRequestRequest struct {
	UnitID     string `json:"unit_id"`
	ItemID     string `json:"item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	SectorName string `json:"sector_name" validate:"required,max=120"`
}

// DecideRequestRequest body para POST /api/requests/:id/decision.
type DecideRequestRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

// RequestResponse salida de una solicitud.
type RequestResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Quantity    int        `json:"quantity"`
	SectorName  string     `json:"sector_name"`
	RequestorID string     `json:"requestor_id"`
	ItemID      string     `json:"item_id"`
	UnitID      string     `json:"unit_id"`
	Timestamp   time.Time  `json:"timestamp"`
	DecidedBy   string     `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// RequestListResponse lista paginada de solicitudes.
type RequestListResponse struct {
	Items []RequestResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PendingCountResponse salida de GET /api/requests/pending-count.
type PendingCountResponse struct {
	Count int `json:"count"`
}

// NewRequestResponse mapea la entidad a la salida HTTP.
func NewRequestResponse(r *entity.TonerRequest) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Status:      r.Status,
		Quantity:    r.Quantity,
		SectorName:  r.SectorName,
		RequestorID: r.RequestorID,
		ItemID:      r.ItemID,
		UnitID:      r.UnitID,
		Timestamp:   r.Timestamp,
		DecidedBy:   r.DecidedBy,
		DecidedAt:   r.DecidedAt,
	}
}
