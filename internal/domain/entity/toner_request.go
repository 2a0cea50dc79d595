package entity

import "time"

// Estados de una solicitud de insumo.
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// TonerRequest solicitud de un sector para retirar insumo de su unidad.
// Sale de PENDING una sola vez; APPROVED y REJECTED son terminales.
type TonerRequest struct {
	ID          string
	Status      string
	Quantity    int
	SectorName  string
	RequestorID string
	ItemID      string
	UnitID      string
	Timestamp   time.Time
	DecidedBy   string
	DecidedAt   *time.Time
}

// IsPending indica si la solicitud aún no fue decidida.
func (r *TonerRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
