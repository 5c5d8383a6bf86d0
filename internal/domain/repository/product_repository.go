package repository

import "github.com/manilapatagonia/cotizador-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo de productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
