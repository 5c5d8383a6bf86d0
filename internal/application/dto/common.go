package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/pkg/numparse"
)

// FlexDecimal decimal que además acepta strings con coma decimal ("12,5"),
// como los que manda un formulario con configuración regional argentina.
// Un string no numérico se trata como 0, igual que un campo vacío.
type FlexDecimal struct {
	decimal.Decimal
}

func (d *FlexDecimal) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d.Decimal = numparse.DecimalOrZero(s)
		return nil
	}
	return d.Decimal.UnmarshalJSON(data)
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
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

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
