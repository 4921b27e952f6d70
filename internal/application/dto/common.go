package dto

// Límites de paginación para listados.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultPage aplica valores por defecto y acota Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
