package dto

// Tamaños de página de los listados (cotizaciones, facturas, clientes, equipo).
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest paginación por limit/offset. Los handlers validan el rango con los tags;
// los casos de uso llaman DefaultPage por si la petición no pasó por HTTP.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage completa Limit vacío y recorta valores fuera de rango.
func (p *PageRequest) DefaultPage() {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageSize
	case p.Limit > MaxPageSize:
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Response arma los metadatos de la página a partir de cuántos elementos devolvió la consulta.
// HasMore es una estimación: una página llena sugiere que hay más.
func (p PageRequest) Response(returned int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, HasMore: returned >= p.Limit}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse cuerpo de error HTTP. Code es estable (INVALID_TRANSITION, INVOICE_LOCKED,
// VALIDATION, INVALID_ID, NOT_FOUND...); Message es texto para humanos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
