package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSpecs especificaciones técnicas del producto.
type ProductSpecs struct {
	Species string `json:"species"`
	TrimCut string `json:"trim_cut"`
	Caliber string `json:"caliber"`
}

// Product es un producto del catálogo (trucha/salmón en sus presentaciones).
// DefaultYieldPct es el rendimiento estándar esperado del proceso; la
// cotización avisa si el rendimiento cargado se desvía demasiado de él.
type Product struct {
	ID              string
	Name            string
	Presentation    string
	Specs           ProductSpecs
	DefaultYieldPct decimal.Decimal
	Conservation    string // fresco, congelado IQF, etc.
	ShelfLife       string
	Certifications  []string
	PhotoURL        string
	SortOrder       int
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductSnapshot copia del producto dentro de una cotización, tomada al
// seleccionarlo. Editar el catálogo después no afecta cotizaciones guardadas.
type ProductSnapshot struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Presentation    string          `json:"presentation"`
	Specs           ProductSpecs    `json:"specs"`
	DefaultYieldPct decimal.Decimal `json:"default_yield_pct"`
	Conservation    string          `json:"conservation,omitempty"`
	ShelfLife       string          `json:"shelf_life,omitempty"`
	Certifications  []string        `json:"certifications,omitempty"`
	PhotoURL        string          `json:"photo_url,omitempty"`
}

// Snapshot arma la copia embebible del producto.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:       p.ID,
		Name:            p.Name,
		Presentation:    p.Presentation,
		Specs:           p.Specs,
		DefaultYieldPct: p.DefaultYieldPct,
		Conservation:    p.Conservation,
		ShelfLife:       p.ShelfLife,
		Certifications:  p.Certifications,
		PhotoURL:        p.PhotoURL,
	}
}
