package dto

const (
	// DefaultPageLimit tamaño de página cuando el cliente no envía limit.
	DefaultPageLimit = 50
	// MaxPageLimit tope aceptado para limit.
	MaxPageLimit = 100
)

// PageRequest limit/offset leídos de la query.
type PageRequest struct {
	Limit  int
	Offset int
}

// Normalize aplica DefaultPageLimit a un limit ausente. Devuelve false si el limit supera
// MaxPageLimit o el offset es negativo.
func (p *PageRequest) Normalize() bool {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	return p.Limit <= MaxPageLimit && p.Offset >= 0
}

// PageResponse metadatos de la página devuelta; Count es la cantidad de ítems incluidos.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
