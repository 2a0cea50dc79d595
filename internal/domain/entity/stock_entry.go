package entity

import "time"

// DefaultMinStockAlert umbral de alerta para entradas creadas sin valor explícito.
const DefaultMinStockAlert = 5

// StockEntry cantidad de un insumo en una unidad. Existe como máximo una por par (unidad, insumo).
// Quantity solo la modifica el libro de stock; nunca es negativa.
type StockEntry struct {
	ID            string
	UnitID        string
	ItemID        string
	Quantity      int
	MinStockAlert int
	IsActive      bool
	UpdatedAt     time.Time
}

// IsLow indica si la entrada está en o por debajo del umbral de alerta.
func (e *StockEntry) IsLow() bool {
	return e.Quantity <= e.MinStockAlert
}
