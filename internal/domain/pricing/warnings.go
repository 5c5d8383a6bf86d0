package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// WarningCode identifica cada advertencia para que el frontend decida cómo
// mostrarla. Las advertencias nunca bloquean el cálculo, solo la confirmación
// cuando el use case así lo decide.
type WarningCode string

const (
	WarnNoRawMaterial    WarningCode = "no_raw_material"
	WarnNoProcessing     WarningCode = "no_processing"
	WarnYieldNotApplied  WarningCode = "yield_not_applied"
	WarnYieldDeviation   WarningCode = "yield_deviation"
	WarnMarginNonProfit  WarningCode = "margin_non_profit"
	WarnMarginTooHigh    WarningCode = "margin_too_high"
	WarnForeignNoRate    WarningCode = "foreign_no_rate"
	WarnLayerNotCovered  WarningCode = "layer_not_covered"
	WarnPctUnitReserved  WarningCode = "pct_unit_reserved"
	WarnCommissionPct100 WarningCode = "commission_pct_100"
)

// Warning advertencia de cobertura o de sanidad económica.
type Warning struct {
	Code    WarningCode    `json:"code"`
	Layer   entity.LayerID `json:"layer,omitempty"`
	Message string         `json:"message"`
}

// CheckCoverage verifica que cada capa exigida por el término comercial
// tenga al menos un ítem con valor. Las faltantes se marcan pero no anulan el
// precio: son una señal de completitud, no un error.
func CheckCoverage(layers []entity.CostLayer, policy TradeTermPolicy, term entity.TradeTerm) []Warning {
	var warnings []Warning
	for _, required := range policy.RequiredLayers(term) {
		covered := false
		var name string
		for _, layer := range layers {
			if layer.LayerID != required {
				continue
			}
			name = layer.LayerName
			for _, item := range layer.Items {
				if item.HasValue() {
					covered = true
					break
				}
			}
		}
		if !covered {
			if name == "" {
				name = string(required)
			}
			warnings = append(warnings, Warning{
				Code:    WarnLayerNotCovered,
				Layer:   required,
				Message: fmt.Sprintf("El término %s exige costos en %s y la capa está vacía.", term, name),
			})
		}
	}
	return warnings
}

// CheckSanity advertencias económicas no bloqueantes.
func CheckSanity(
	layers []entity.CostLayer,
	effectiveYield decimal.Decimal,
	totalCostPerKg decimal.Decimal,
	marginPct decimal.Decimal,
	usdArsRate decimal.Decimal,
	settlement entity.Currency,
	productYieldPct decimal.Decimal,
	commission entity.Commission,
) []Warning {
	var warnings []Warning

	var rawItems, procItems int
	var rawHasValue, foreignItems, pctUnits bool
	for _, layer := range layers {
		switch layer.LayerID {
		case entity.LayerRawMaterial:
			rawItems = len(layer.Items)
			for _, item := range layer.Items {
				if item.HasValue() {
					rawHasValue = true
				}
			}
		case entity.LayerProcessing:
			procItems = len(layer.Items)
		}
		for _, item := range layer.Items {
			if item.Currency != settlement {
				foreignItems = true
			}
			if item.VariableUnit == entity.UnitPctCost || item.VariableUnit == entity.UnitPctPrice {
				pctUnits = true
			}
		}
	}

	if rawItems == 0 {
		warnings = append(warnings, Warning{Code: WarnNoRawMaterial,
			Message: "Sin materia prima — ¿falta agregar el costo del pescado?"})
	}
	if procItems == 0 {
		warnings = append(warnings, Warning{Code: WarnNoProcessing,
			Message: "Sin Proceso en Planta — el costo de mano de obra no está incluido."})
	}
	if rawHasValue && effectiveYield.GreaterThanOrEqual(decimal.NewFromFloat(0.99)) {
		warnings = append(warnings, Warning{Code: WarnYieldNotApplied,
			Message: "Rendimiento 100% — el costo de MP no está ajustado por merma."})
	}
	if totalCostPerKg.IsPositive() && !marginPct.IsPositive() {
		warnings = append(warnings, Warning{Code: WarnMarginNonProfit,
			Message: "Margen 0% o negativo."})
	}
	if marginPct.GreaterThan(hundred) {
		warnings = append(warnings, Warning{Code: WarnMarginTooHigh,
			Message: fmt.Sprintf("Margen %s%% — revisá que no sea un error de carga.", marginPct.StringFixed(1))})
	}
	if foreignItems && !usdArsRate.IsPositive() {
		currency := entity.CurrencyARS
		if settlement == entity.CurrencyARS {
			currency = entity.CurrencyUSD
		}
		warnings = append(warnings, Warning{Code: WarnForeignNoRate,
			Message: fmt.Sprintf("Hay ítems en %s y no se definió tipo de cambio — esos ítems aportan $0.", currency)})
	}
	if pctUnits {
		warnings = append(warnings, Warning{Code: WarnPctUnitReserved,
			Message: "Unidad % costo / % precio sin implementar — esos ítems aportan $0."})
	}
	if commission.Base == entity.BasePrice && commission.Pct.GreaterThanOrEqual(hundred) {
		warnings = append(warnings, Warning{Code: WarnCommissionPct100,
			Message: "Comisión ≥ 100% sobre precio final — precio y comisión quedan en $0."})
	}

	// Desvío del rendimiento respecto del standard del producto.
	if productYieldPct.IsPositive() && HasDefinedYield(layers) {
		actual := effectiveYield.Mul(hundred)
		deviation := actual.Sub(productYieldPct).Abs().Div(productYieldPct).Mul(hundred)
		if deviation.GreaterThan(decimal.NewFromInt(10)) {
			warnings = append(warnings, Warning{Code: WarnYieldDeviation,
				Message: fmt.Sprintf("Rdto %s%% difiere %s%% del standard (%s%%).",
					actual.StringFixed(1), deviation.StringFixed(0), productYieldPct.StringFixed(0))})
		}
	}

	return warnings
}
