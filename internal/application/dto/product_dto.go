package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name            string              `json:"name" validate:"required,min=1,max=200"`
	Presentation    string              `json:"presentation"`
	Specs           entity.ProductSpecs `json:"specs"`
	DefaultYieldPct decimal.Decimal     `json:"default_yield_pct"`
	Conservation    string              `json:"conservation"`
	ShelfLife       string              `json:"shelf_life"`
	Certifications  []string            `json:"certifications"`
	PhotoURL        string              `json:"photo_url"`
	SortOrder       int                 `json:"sort_order"`
	Notes           string              `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto. Punteros: campo
// ausente = no tocar.
type UpdateProductRequest struct {
	Name            *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Presentation    *string              `json:"presentation"`
	Specs           *entity.ProductSpecs `json:"specs"`
	DefaultYieldPct *decimal.Decimal     `json:"default_yield_pct"`
	Conservation    *string              `json:"conservation"`
	ShelfLife       *string              `json:"shelf_life"`
	Certifications  []string             `json:"certifications"`
	PhotoURL        *string              `json:"photo_url"`
	SortOrder       *int                 `json:"sort_order"`
	Notes           *string              `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Presentation    string              `json:"presentation"`
	Specs           entity.ProductSpecs `json:"specs"`
	DefaultYieldPct decimal.Decimal     `json:"default_yield_pct"`
	Conservation    string              `json:"conservation"`
	ShelfLife       string              `json:"shelf_life"`
	Certifications  []string            `json:"certifications"`
	PhotoURL        string              `json:"photo_url"`
	SortOrder       int                 `json:"sort_order"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
