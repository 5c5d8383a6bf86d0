package repository

import (
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// QuoteFilter filtros de listado de cotizaciones. Campos vacíos no filtran.
type QuoteFilter struct {
	Type      entity.QuoteType
	Status    entity.QuoteStatus
	TradeTerm entity.TradeTerm
	Client    string // match parcial sobre nombre o empresa
	ProductID string
	CreatedBy string
	Limit     int
	Offset    int
}

// QuoteRepository puerto de persistencia para cotizaciones.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	GetByID(id string) (*entity.Quote, error)
	Update(quote *entity.Quote) error
	List(filter QuoteFilter) ([]*entity.Quote, int, error)
	Delete(id string) error
}
