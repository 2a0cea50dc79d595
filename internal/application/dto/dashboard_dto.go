package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ItemCount          int                   `json:"item_count"`  // insumos activos del catálogo
	TotalStock         int                   `json:"total_stock"` // suma de cantidades visibles
	LowStockCount      int                   `json:"low_stock_count"`
	PendingRequests    int                   `json:"pending_requests"`
	StockByUnit        []UnitStockDTO        `json:"stock_by_unit"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	GeneratedAt        time.Time             `json:"generated_at"`
}

// UnitStockDTO total de stock de una unidad para el gráfico del dashboard.
type UnitStockDTO struct {
	UnitID   string `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Quantity int    `json:"quantity"`
	LowStock int    `json:"low_stock"`
}
