package postgres

import (
	"context"
	"fmt"

	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo numerador secuencial sobre PostgreSQL (usable con pool o tx).
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador del numerador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el contador en un único statement atómico.
// El upsert con RETURNING serializa emisores concurrentes a nivel de fila:
// dos llamadas simultáneas nunca reciben el mismo valor.
func (r *CounterRepo) Next(name string) (int64, error) {
	query := `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return value, nil
}
