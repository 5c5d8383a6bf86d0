package entity

import "github.com/shopspring/decimal"

// Monedas en las que puede expresarse un ítem de costo.
// La cotización de exportación liquida en USD; la de mercado local en ARS.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyARS Currency = "ARS"
)

// CostUnit unidad del componente variable de un ítem de costo.
type CostUnit string

const (
	UnitKg       CostUnit = "kg"        // valor directo por kilogramo
	UnitUnit     CostUnit = "unit"      // por unidad, requiere VariableUnitKg
	UnitBox      CostUnit = "box"       // por caja, requiere VariableUnitKg
	UnitLoad     CostUnit = "load"      // por carga completa, se amortiza sobre el volumen
	UnitPctCost  CostUnit = "pct_cost"  // % del costo — reservada, hoy aporta 0
	UnitPctPrice CostUnit = "pct_price" // % del precio — reservada, hoy aporta 0
)

// NeedsUnitKg indica si la unidad requiere los kilogramos por unidad/caja
// para poder convertir el valor a costo por kg.
func (u CostUnit) NeedsUnitKg() bool {
	return u == UnitUnit || u == UnitBox
}

// Origen de los valores de un ítem.
type ItemSource string

const (
	SourceManual ItemSource = "manual"
	SourceTable  ItemSource = "table" // copiado de una tabla de referencia (snapshot, no referencia viva)
)

// CostItem es una línea de costo dentro de una capa. Los tags JSON definen el
// formato del snapshot persistido en la cotización.
type CostItem struct {
	Name             string          `json:"name"`
	Source           ItemSource      `json:"source"`
	TableRef         string          `json:"table_ref,omitempty"` // trazabilidad; la copia es snapshot
	Currency         Currency        `json:"currency"`
	VariableValue    decimal.Decimal `json:"variable_value"`
	VariableUnit     CostUnit        `json:"variable_unit"`
	VariableUnitKg   decimal.Decimal `json:"variable_unit_kg"` // kg que representa una unidad/caja; solo unit/box
	FixedPerShipment decimal.Decimal `json:"fixed_per_shipment"`
	FixedPerQuote    decimal.Decimal `json:"fixed_per_quote"`
	YieldPct         decimal.Decimal `json:"yield_pct"` // solo ítems de la capa processing; (0,100]
	Mandatory        bool            `json:"mandatory"`
	MandatoryID      string          `json:"mandatory_id,omitempty"`
	CostPerKgCalc    decimal.Decimal `json:"cost_per_kg_calc"` // derivado, cache del normalizador
	Notes            string          `json:"notes,omitempty"`
}

// HasValue indica si el ítem aporta algún valor (variable o fijo) — se usa
// para el chequeo de cobertura por término comercial.
func (i CostItem) HasValue() bool {
	return i.VariableValue.IsPositive() || i.FixedPerShipment.IsPositive() || i.FixedPerQuote.IsPositive()
}
