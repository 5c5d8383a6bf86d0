package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

var _ repository.CostTableRepository = (*CostTableRepo)(nil)

// CostTableRepo implementación del puerto CostTableRepository sobre PostgreSQL.
type CostTableRepo struct {
	pool *pgxpool.Pool
}

// NewCostTableRepository construye el adaptador de persistencia para tablas de costos.
func NewCostTableRepository(pool *pgxpool.Pool) *CostTableRepo {
	return &CostTableRepo{pool: pool}
}

const costEntrySelect = `
	SELECT id, layer, name, variable_value, variable_unit, variable_unit_kg,
	       fixed_per_shipment, fixed_per_quote, notes, created_at, updated_at
	FROM cost_table_entries`

// Create persiste una entrada de referencia.
func (r *CostTableRepo) Create(entry *entity.CostTableEntry) error {
	query := `
		INSERT INTO cost_table_entries (id, layer, name, variable_value, variable_unit, variable_unit_kg,
		                                fixed_per_shipment, fixed_per_quote, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		entry.ID, entry.Layer, entry.Name, entry.VariableValue, entry.VariableUnit, entry.VariableUnitKg,
		entry.FixedPerShipment, entry.FixedPerQuote, entry.Notes, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *CostTableRepo) GetByID(id string) (*entity.CostTableEntry, error) {
	e, err := scanCostEntry(r.pool.QueryRow(context.Background(), costEntrySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost entry: %w", err)
	}
	return e, nil
}

// Update actualiza una entrada de referencia.
func (r *CostTableRepo) Update(entry *entity.CostTableEntry) error {
	query := `
		UPDATE cost_table_entries SET layer = $2, name = $3, variable_value = $4, variable_unit = $5,
			variable_unit_kg = $6, fixed_per_shipment = $7, fixed_per_quote = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		entry.ID, entry.Layer, entry.Name, entry.VariableValue, entry.VariableUnit,
		entry.VariableUnitKg, entry.FixedPerShipment, entry.FixedPerQuote, entry.Notes, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cost entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista entradas con paginación, agrupadas por capa.
func (r *CostTableRepo) List(limit, offset int) ([]*entity.CostTableEntry, error) {
	query := costEntrySelect + ` ORDER BY layer, name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	defer rows.Close()
	return collectCostEntries(rows)
}

// ListByLayer lista las entradas de una capa.
func (r *CostTableRepo) ListByLayer(layer entity.LayerID) ([]*entity.CostTableEntry, error) {
	query := costEntrySelect + ` WHERE layer = $1 ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, layer)
	if err != nil {
		return nil, fmt.Errorf("list cost entries by layer: %w", err)
	}
	defer rows.Close()
	return collectCostEntries(rows)
}

// Delete elimina una entrada por ID.
func (r *CostTableRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM cost_table_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cost entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCostEntry(row pgx.Row) (*entity.CostTableEntry, error) {
	var e entity.CostTableEntry
	err := row.Scan(
		&e.ID, &e.Layer, &e.Name, &e.VariableValue, &e.VariableUnit, &e.VariableUnitKg,
		&e.FixedPerShipment, &e.FixedPerQuote, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectCostEntries(rows pgx.Rows) ([]*entity.CostTableEntry, error) {
	var list []*entity.CostTableEntry
	for rows.Next() {
		e, err := scanCostEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
