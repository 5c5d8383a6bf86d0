package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

var minMarginPct = decimal.NewFromInt(-99)

// SolveMargin invierte algebraicamente las fórmulas de comisión: dado un
// precio objetivo, despeja el margen que lo produce bajo la base activa.
//
// Devuelve el margen en puntos porcentuales, acotado a ≥ 0: un margen
// negativo significa "ese precio no es alcanzable con ganancia" y se pisa a
// cero en lugar de exponer un número negativo. Si el despeje no es resoluble
// (base ≤ 0, pct ≥ 100 sobre precio) o cae por debajo de −99%, ok=false y el
// llamador conserva el margen anterior.
func SolveMargin(
	targetPrice decimal.Decimal,
	totalCostPerKg decimal.Decimal,
	c entity.Commission,
	volumeKg decimal.Decimal,
	numShipments int,
	plantExitPerKg decimal.Decimal,
) (marginPct decimal.Decimal, ok bool) {
	if !targetPrice.IsPositive() {
		return decimal.Zero, false
	}
	fixedPerKg := CommissionFixedPerKg(c, volumeKg, numShipments)
	pctRatio := c.Pct.Div(hundred)

	var solved decimal.Decimal
	switch c.Base {
	case entity.BasePlantExit:
		// tp = cost×(1+m) + plantExit×(1+m)×pct + fixed
		base := totalCostPerKg.Add(plantExitPerKg.Mul(pctRatio))
		if !base.IsPositive() {
			return decimal.Zero, false
		}
		solved = targetPrice.Sub(fixedPerKg).Div(base).Sub(one).Mul(hundred)
	case entity.BasePrice:
		// tp×(1−pct) = cost×(1+m) + fixed
		if !totalCostPerKg.IsPositive() {
			return decimal.Zero, false
		}
		net := targetPrice.Mul(one.Sub(pctRatio)).Sub(fixedPerKg)
		solved = net.Div(totalCostPerKg).Sub(one).Mul(hundred)
	default: // cost
		// tp = (cost×(1+pct) + fixed)×(1+m)
		base := totalCostPerKg.Mul(one.Add(pctRatio)).Add(fixedPerKg)
		if !base.IsPositive() {
			return decimal.Zero, false
		}
		solved = targetPrice.Div(base).Sub(one).Mul(hundred)
	}

	if solved.LessThan(minMarginPct) {
		return decimal.Zero, false
	}
	if solved.IsNegative() {
		solved = decimal.Zero
	}
	return solved, true
}
