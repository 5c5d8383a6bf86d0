package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// Input estado explícito de una cotización para el recomputo. Sin estado
// global: el motor es una función pura Input → Result y puede ejecutarse
// tanto al editar como al confirmar o al recibir un compute del frontend.
type Input struct {
	Type         entity.QuoteType
	StagedTerms  bool
	TradeTerm    entity.TradeTerm
	Layers       []entity.CostLayer
	Commission   entity.Commission
	VolumeKg     decimal.Decimal
	NumShipments int
	ExchangeRate decimal.Decimal // ARS por USD; 0 = no cargado

	LockMode    entity.LockMode
	MarginPct   decimal.Decimal // autoritativo con LockMode=margin
	TargetPrice decimal.Decimal // autoritativo con LockMode=price

	ProductYieldPct decimal.Decimal // rendimiento standard del producto, para el aviso de desvío
}

// Result números derivados del recomputo. Layers trae cada ítem con su
// cost_per_kg_calc actualizado y cada capa con su total, lista para persistir
// como snapshot.
type Result struct {
	EffectiveYield decimal.Decimal    `json:"effective_yield"`
	Layers         []entity.CostLayer `json:"cost_layers"`
	TotalCostPerKg decimal.Decimal    `json:"total_cost_per_kg"`
	PlantExitPerKg decimal.Decimal    `json:"plant_exit_per_kg"`
	CommPerKg      decimal.Decimal    `json:"comm_per_kg"`
	MarginPct      decimal.Decimal    `json:"margin_pct"` // despejado si LockMode=price
	PricePerKg     decimal.Decimal    `json:"price_per_kg"`
	PricePerLb     decimal.Decimal    `json:"price_per_lb"`
	Warnings       []Warning          `json:"warnings,omitempty"`

	// Conceptos obligatorios que siguen sin valor cargado (checklist de
	// completitud; bloquean la confirmación, nunca el guardado).
	MandatoryMissing []string `json:"mandatory_missing,omitempty"`
}

// Recompute ejecuta el pipeline completo: rendimiento → normalización →
// agregación por capas → comisión y precio (directo o despejado) →
// advertencias. O(cantidad de ítems), sin puntos de suspensión.
func Recompute(in Input) Result {
	policy := PolicyFor(in.Type, in.StagedTerms)
	settlement := in.Type.SettlementCurrency()
	if in.NumShipments < 1 {
		in.NumShipments = 1
	}

	ey := EffectiveYield(in.Layers)
	agg := ComputeLayers(in.Layers, policy, in.TradeTerm, ey, settlement, in.ExchangeRate, in.VolumeKg, in.NumShipments)

	marginPct := in.MarginPct
	if in.LockMode == entity.LockPrice {
		if solved, ok := SolveMargin(in.TargetPrice, agg.TotalCostPerKg, in.Commission, in.VolumeKg, in.NumShipments, agg.PlantExitPerKg); ok {
			marginPct = solved
		}
	}

	commPerKg, pricePerKg := ResolveCommission(agg.TotalCostPerKg, in.Commission, in.VolumeKg, in.NumShipments, marginPct, agg.PlantExitPerKg)

	res := Result{
		EffectiveYield: ey,
		Layers:         agg.Layers,
		TotalCostPerKg: agg.TotalCostPerKg,
		PlantExitPerKg: agg.PlantExitPerKg,
		CommPerKg:      commPerKg,
		MarginPct:      marginPct,
		PricePerKg:     pricePerKg,
		PricePerLb:     pricePerKg.Div(lbPerKg),
	}

	res.Warnings = append(res.Warnings, CheckCoverage(agg.Layers, policy, in.TradeTerm)...)
	res.Warnings = append(res.Warnings,
		CheckSanity(agg.Layers, ey, agg.TotalCostPerKg, marginPct, in.ExchangeRate, settlement, in.ProductYieldPct, in.Commission)...)
	res.MandatoryMissing = missingMandatory(agg.Layers)

	return res
}

// missingMandatory conceptos obligatorios sin valor cargado.
func missingMandatory(layers []entity.CostLayer) []string {
	filled := make(map[string]bool)
	for _, layer := range layers {
		for _, item := range layer.Items {
			if item.MandatoryID != "" && item.HasValue() {
				filled[item.MandatoryID] = true
			}
		}
	}
	var missing []string
	for _, mi := range entity.MandatoryItems() {
		// "Otros" es opcional por naturaleza aunque venga pre-cargado.
		if mi.ID == "otros" {
			continue
		}
		if !filled[mi.ID] {
			missing = append(missing, mi.Name)
		}
	}
	return missing
}
