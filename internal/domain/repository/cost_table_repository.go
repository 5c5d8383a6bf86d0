package repository

import "github.com/manilapatagonia/cotizador-api/internal/domain/entity"

// CostTableRepository puerto de persistencia para las tablas de costos de referencia.
type CostTableRepository interface {
	Create(entry *entity.CostTableEntry) error
	GetByID(id string) (*entity.CostTableEntry, error)
	Update(entry *entity.CostTableEntry) error
	List(limit, offset int) ([]*entity.CostTableEntry, error)
	ListByLayer(layer entity.LayerID) ([]*entity.CostTableEntry, error)
	Delete(id string) error
}
