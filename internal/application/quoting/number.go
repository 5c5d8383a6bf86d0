package quoting

import (
	"fmt"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// Nombres de los contadores secuenciales, uno por línea de producto.
const (
	counterExport = "quote_next"
	counterLocal  = "quote_local_next"
)

// CounterName nombre del contador según tipo de cotización.
func CounterName(t entity.QuoteType) string {
	if t == entity.QuoteTypeLocal {
		return counterLocal
	}
	return counterExport
}

// FormatNumber arma el número de cotización PREFIX-YEAR-NNN.
// El secuencial va con padding a 3 dígitos pero no se trunca por encima de 999.
func FormatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}
