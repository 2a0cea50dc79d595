package entity

import "time"

// Colores de tóner admitidos.
const (
	ColorBlack   = "Black"
	ColorCyan    = "Cyan"
	ColorMagenta = "Magenta"
	ColorYellow  = "Yellow"
)

// SupplyItem representa un modelo de insumo (tóner) del catálogo.
// Un ítem inactivo no se siembra en unidades nuevas pero conserva sus entradas e historial.
type SupplyItem struct {
	ID        string
	Model     string
	Color     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidColor indica si c es uno de los colores admitidos.
func ValidColor(c string) bool {
	switch c {
	case ColorBlack, ColorCyan, ColorMagenta, ColorYellow:
		return true
	}
	return false
}
