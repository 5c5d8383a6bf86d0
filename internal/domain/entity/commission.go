package entity

import "github.com/shopspring/decimal"

// CommissionBase define sobre qué se calcula el porcentaje de comisión.
type CommissionBase string

const (
	BaseCost      CommissionBase = "cost"       // % del costo total
	BasePlantExit CommissionBase = "plant_exit" // % del precio salida de planta (MP+proceso+embalaje con margen)
	BasePrice     CommissionBase = "price"      // % del precio final de venta
)

// Commission parámetros de comisión de venta de la cotización.
type Commission struct {
	Pct              decimal.Decimal `json:"pct"`
	Base             CommissionBase  `json:"base"`
	FixedPerKg       decimal.Decimal `json:"fixed_per_kg"`
	FixedPerShipment decimal.Decimal `json:"fixed_per_shipment"`
	FixedPerQuote    decimal.Decimal `json:"fixed_per_quote"`
}
