package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// EffectiveYield rendimiento efectivo acumulado: producto de yield_pct/100
// sobre los ítems de proceso con rendimiento cargado. Modela etapas
// secuenciales de merma (despinado, recorte); ítems sin rendimiento aportan
// factor 1. Sin capa de proceso o sin rendimientos → 1 (sin merma).
func EffectiveYield(layers []entity.CostLayer) decimal.Decimal {
	ey := decimal.NewFromInt(1)
	for _, layer := range layers {
		if layer.LayerID != entity.LayerProcessing {
			continue
		}
		for _, item := range layer.Items {
			if item.YieldPct.IsPositive() {
				ey = ey.Mul(item.YieldPct.Div(hundred))
			}
		}
	}
	return ey
}

// HasDefinedYield indica si algún ítem de proceso tiene rendimiento cargado.
func HasDefinedYield(layers []entity.CostLayer) bool {
	for _, layer := range layers {
		if layer.LayerID != entity.LayerProcessing {
			continue
		}
		for _, item := range layer.Items {
			if item.YieldPct.IsPositive() {
				return true
			}
		}
	}
	return false
}
