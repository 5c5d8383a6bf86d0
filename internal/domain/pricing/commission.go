package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// CommissionFixedPerKg componente fijo de la comisión amortizado a kg:
// fixed_per_kg + (fixed_per_shipment × embarques + fixed_per_quote) / volumen.
func CommissionFixedPerKg(c entity.Commission, volumeKg decimal.Decimal, numShipments int) decimal.Decimal {
	fixed := c.FixedPerKg
	if volumeKg.IsPositive() {
		ships := decimal.NewFromInt(int64(numShipments))
		fixed = fixed.Add(c.FixedPerShipment.Mul(ships).Add(c.FixedPerQuote).Div(volumeKg))
	}
	return fixed
}

// ResolveCommission calcula comisión y precio por kg según la base elegida.
// marginPct en puntos porcentuales (20 = 20%).
//
// base=price con pct ≥ 100 es una división por cero o negativa: comisión y
// precio degradan a 0 y el checker emite la advertencia correspondiente.
func ResolveCommission(
	totalCostPerKg decimal.Decimal,
	c entity.Commission,
	volumeKg decimal.Decimal,
	numShipments int,
	marginPct decimal.Decimal,
	plantExitPerKg decimal.Decimal,
) (commPerKg, pricePerKg decimal.Decimal) {
	fixedPerKg := CommissionFixedPerKg(c, volumeKg, numShipments)
	marginFactor := one.Add(marginPct.Div(hundred))
	pctRatio := c.Pct.Div(hundred)

	switch c.Base {
	case entity.BasePlantExit:
		plantExitPrice := plantExitPerKg.Mul(marginFactor)
		commPerKg = plantExitPrice.Mul(pctRatio).Add(fixedPerKg)
		pricePerKg = totalCostPerKg.Mul(marginFactor).Add(commPerKg)
	case entity.BasePrice:
		divisor := one.Sub(pctRatio)
		if !divisor.IsPositive() {
			return decimal.Zero, decimal.Zero
		}
		pricePerKg = totalCostPerKg.Mul(marginFactor).Add(fixedPerKg).Div(divisor)
		commPerKg = pricePerKg.Mul(pctRatio).Add(fixedPerKg)
	default: // cost
		commPerKg = totalCostPerKg.Mul(pctRatio).Add(fixedPerKg)
		pricePerKg = totalCostPerKg.Add(commPerKg).Mul(marginFactor)
	}
	return commPerKg, pricePerKg
}
