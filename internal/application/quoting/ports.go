package quoting

import (
	"context"

	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

// TxRunner ejecuta una función con los repos de cotización y numerador atados
// a una misma transacción. Asignar número y crear la cotización deben ser
// atómicos: es la única garantía de que no se emiten números duplicados.
type TxRunner interface {
	RunQuote(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		counterRepo repository.CounterRepository,
	) error) error
}
