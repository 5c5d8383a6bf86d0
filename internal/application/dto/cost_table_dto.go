package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// CreateCostEntryRequest entrada para crear un ítem de referencia. Los
// valores numéricos aceptan coma decimal ("12,5") vía FlexDecimal.
type CreateCostEntryRequest struct {
	Layer            entity.LayerID  `json:"layer" validate:"required"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	VariableValue    FlexDecimal     `json:"variable_value"`
	VariableUnit     entity.CostUnit `json:"variable_unit" validate:"required"`
	VariableUnitKg   FlexDecimal     `json:"variable_unit_kg"`
	FixedPerShipment FlexDecimal     `json:"fixed_per_shipment"`
	FixedPerQuote    FlexDecimal     `json:"fixed_per_quote"`
	Notes            string          `json:"notes"`
}

// UpdateCostEntryRequest entrada para actualizar un ítem de referencia.
type UpdateCostEntryRequest struct {
	Layer            *entity.LayerID  `json:"layer"`
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	VariableValue    *FlexDecimal     `json:"variable_value"`
	VariableUnit     *entity.CostUnit `json:"variable_unit"`
	VariableUnitKg   *FlexDecimal     `json:"variable_unit_kg"`
	FixedPerShipment *FlexDecimal     `json:"fixed_per_shipment"`
	FixedPerQuote    *FlexDecimal     `json:"fixed_per_quote"`
	Notes            *string          `json:"notes"`
}

// CostEntryResponse salida de un ítem de referencia.
type CostEntryResponse struct {
	ID               string          `json:"id"`
	Layer            entity.LayerID  `json:"layer"`
	Name             string          `json:"name"`
	VariableValue    decimal.Decimal `json:"variable_value"`
	VariableUnit     entity.CostUnit `json:"variable_unit"`
	VariableUnitKg   decimal.Decimal `json:"variable_unit_kg"`
	FixedPerShipment decimal.Decimal `json:"fixed_per_shipment"`
	FixedPerQuote    decimal.Decimal `json:"fixed_per_quote"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CostEntryListResponse lista paginada de ítems de referencia.
type CostEntryListResponse struct {
	Items []CostEntryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
