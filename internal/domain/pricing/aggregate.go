package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// Aggregation resultado del agregador de capas.
type Aggregation struct {
	Layers         []entity.CostLayer // copia con cost_per_kg_calc y total_per_kg actualizados
	TotalCostPerKg decimal.Decimal    // suma de las capas incluidas por la política
	PlantExitPerKg decimal.Decimal    // materia prima + proceso + embalaje
}

// ComputeLayers normaliza cada ítem a la moneda de liquidación, aplica el
// ajuste por rendimiento donde corresponde y suma los totales por capa.
// Cada capa muestra siempre su propio total (transparencia para el usuario),
// pero solo las capas incluidas por la política suman al costo total.
func ComputeLayers(
	layers []entity.CostLayer,
	policy TradeTermPolicy,
	term entity.TradeTerm,
	effectiveYield decimal.Decimal,
	settlement entity.Currency,
	usdArsRate decimal.Decimal,
	volumeKg decimal.Decimal,
	numShipments int,
) Aggregation {
	out := Aggregation{Layers: make([]entity.CostLayer, len(layers))}

	for li, layer := range layers {
		layerCopy := layer
		layerCopy.Items = make([]entity.CostItem, len(layer.Items))
		copy(layerCopy.Items, layer.Items)

		layerTotal := decimal.Zero
		for ii, item := range layerCopy.Items {
			raw := ItemCostPerKgRaw(item, volumeKg, numShipments)
			cost := ToSettlement(raw, item.Currency, settlement, usdArsRate)
			if layer.AppliesYield && effectiveYield.IsPositive() {
				cost = cost.Div(effectiveYield)
			}
			layerCopy.Items[ii].CostPerKgCalc = cost
			layerTotal = layerTotal.Add(cost)
		}
		layerCopy.TotalPerKg = layerTotal
		out.Layers[li] = layerCopy

		if policy.Includes(layer, term) {
			out.TotalCostPerKg = out.TotalCostPerKg.Add(layerTotal)
		}
		switch layer.LayerID {
		case entity.LayerRawMaterial, entity.LayerProcessing, entity.LayerPackaging:
			out.PlantExitPerKg = out.PlantExitPerKg.Add(layerTotal)
		}
	}
	return out
}
