package dto

import (
	"time"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/stock/adjust.
type AdjustStockRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
	ItemID string `json:"item_id" validate:"required"`
	Delta  int    `json:"delta" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=ADD REMOVE ADJUSTMENT"`
	Reason string `json:"reason" validate:"max=500"`
}

// MinStockAlertRequest body para PUT /api/stock/min-alert.
type MinStockAlertRequest struct {
	UnitID        string `json:"unit_id" validate:"required"`
	ItemID        string `json:"item_id" validate:"required"`
	MinStockAlert int    `json:"min_stock_alert" validate:"min=0"`
}

// TransferRequest body para POST /api/stock/transfers.
// Origen igual a destino o cantidad no positiva se reportan como INVALID_TRANSFER.
type TransferRequest struct {
	SourceUnitID string `json:"source_unit_id" validate:"required"`
	DestUnitID   string `json:"dest_unit_id" validate:"required"`
	ItemID       string `json:"item_id" validate:"required"`
	Quantity     int    `json:"quantity"`
}

// StockEntryResponse salida de una entrada de stock.
type StockEntryResponse struct {
	ID            string    `json:"id"`
	UnitID        string    `json:"unit_id"`
	ItemID        string    `json:"item_id"`
	Quantity      int       `json:"quantity"`
	MinStockAlert int       `json:"min_stock_alert"`
	IsActive      bool      `json:"is_active"`
	IsLow         bool      `json:"is_low"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockListResponse lista de entradas de stock.
type StockListResponse struct {
	Total int                  `json:"total"`
	Items []StockEntryResponse `json:"items"`
}

// TransactionResponse salida de un registro del historial.
type TransactionResponse struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	UserID        string    `json:"user_id"`
	ItemID        string    `json:"item_id"`
	UnitID        string    `json:"unit_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// TransactionListResponse historial acotado, más reciente primero.
type TransactionListResponse struct {
	Limit int                   `json:"limit"`
	Items []TransactionResponse `json:"items"`
}

// TransferResponse salida de una transferencia confirmada.
type TransferResponse struct {
	CorrelationID string              `json:"correlation_id"`
	Debit         TransactionResponse `json:"debit"`
	Credit        TransactionResponse `json:"credit"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para una entrada en alerta.
type ReplenishmentSuggestionDTO struct {
	UnitID             string `json:"unit_id"`
	ItemID             string `json:"item_id"`
	CurrentStock       int    `json:"current_stock"`
	MinStockAlert      int    `json:"min_stock_alert"`
	IdealStock         int    `json:"ideal_stock"`         // MinStockAlert * 1.5
	SuggestedOrderQty  int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	ConsumedLast90Days int    `json:"consumed_last_90d"`
	Priority           int    `json:"priority"` // 1 = más urgente
}

// NewStockEntryResponse mapea la entidad a la salida HTTP.
func NewStockEntryResponse(e *entity.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:            e.ID,
		UnitID:        e.UnitID,
		ItemID:        e.ItemID,
		Quantity:      e.Quantity,
		MinStockAlert: e.MinStockAlert,
		IsActive:      e.IsActive,
		IsLow:         e.IsLow(),
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewTransactionResponse mapea la entidad a la salida HTTP.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		CorrelationID: t.CorrelationID,
		Type:          t.Type,
		Quantity:      t.Quantity,
		Reason:        t.Reason,
		UserID:        t.UserID,
		ItemID:        t.ItemID,
		UnitID:        t.UnitID,
		Timestamp:     t.Timestamp,
	}
}
