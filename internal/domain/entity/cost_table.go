package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostTableEntry es un ítem de referencia de las tablas de costos. Al usarlo
// en una cotización se copian sus valores (snapshot): editar la tabla después
// no toca los ítems ya copiados, solo queda el table_ref como trazabilidad.
type CostTableEntry struct {
	ID               string
	Layer            LayerID
	Name             string
	VariableValue    decimal.Decimal
	VariableUnit     CostUnit
	VariableUnitKg   decimal.Decimal
	FixedPerShipment decimal.Decimal
	FixedPerQuote    decimal.Decimal
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToCostItem copia la entrada de referencia como ítem de cotización.
// La moneda se asigna según el tipo de cotización que recibe la copia.
func (e *CostTableEntry) ToCostItem(currency Currency) CostItem {
	return CostItem{
		Name:             e.Name,
		Source:           SourceTable,
		TableRef:         e.ID,
		Currency:         currency,
		VariableValue:    e.VariableValue,
		VariableUnit:     e.VariableUnit,
		VariableUnitKg:   e.VariableUnitKg,
		FixedPerShipment: e.FixedPerShipment,
		FixedPerQuote:    e.FixedPerQuote,
		Notes:            e.Notes,
	}
}
