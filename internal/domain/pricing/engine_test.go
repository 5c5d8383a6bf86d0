package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecEq compara decimales con tolerancia para los despejes que
// involucran divisiones no exactas.
func assertDecEq(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	eps := dec("0.0000001")
	assert.True(t, want.Sub(got).Abs().LessThan(eps),
		"%s: esperado %s, obtuvo %s", msg, want, got)
}

func kgItem(name string, value string, currency entity.Currency) entity.CostItem {
	return entity.CostItem{
		Name:          name,
		Source:        entity.SourceManual,
		Currency:      currency,
		VariableValue: dec(value),
		VariableUnit:  entity.UnitKg,
	}
}

func procItem(name, yieldPct string) entity.CostItem {
	item := kgItem(name, "0", entity.CurrencyUSD)
	item.YieldPct = dec(yieldPct)
	return item
}

// exportInput arma una cotización de exportación mínima con las capas clásicas.
func exportInput() pricing.Input {
	return pricing.Input{
		Type:         entity.QuoteTypeExport,
		TradeTerm:    entity.TermFOB,
		Layers:       entity.ExportLayers(),
		VolumeKg:     dec("1000"),
		NumShipments: 1,
		LockMode:     entity.LockMargin,
	}
}

func layerByID(layers []entity.CostLayer, id entity.LayerID) *entity.CostLayer {
	for i := range layers {
		if layers[i].LayerID == id {
			return &layers[i]
		}
	}
	return nil
}

func addItem(layers []entity.CostLayer, id entity.LayerID, item entity.CostItem) {
	l := layerByID(layers, id)
	l.Items = append(l.Items, item)
}

func hasWarning(warnings []pricing.Warning, code pricing.WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Rendimiento efectivo
// ──────────────────────────────────────────────────────────────────────────────

func TestEffectiveYield_ComposicionSecuencial(t *testing.T) {
	layers := entity.ExportLayers()
	addItem(layers, entity.LayerProcessing, procItem("Despinado", "90"))
	addItem(layers, entity.LayerProcessing, procItem("Recorte", "95"))

	ey := pricing.EffectiveYield(layers)
	assertDecEq(t, dec("0.855"), ey, "90% × 95% debe componer 85.5%")
}

func TestEffectiveYield_ItemsSinRendimientoSeIgnoran(t *testing.T) {
	layers := entity.ExportLayers()
	addItem(layers, entity.LayerProcessing, procItem("Despinado", "90"))
	addItem(layers, entity.LayerProcessing, kgItem("MO Empaque", "1", entity.CurrencyUSD)) // sin yield

	ey := pricing.EffectiveYield(layers)
	assertDecEq(t, dec("0.9"), ey, "ítems sin rendimiento aportan factor 1")
}

func TestEffectiveYield_SinProceso(t *testing.T) {
	ey := pricing.EffectiveYield(entity.ExportLayers())
	assert.True(t, ey.Equal(decimal.NewFromInt(1)), "sin ítems de proceso el rendimiento es 1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCostPerKgRaw_ConversionCaja(t *testing.T) {
	item := entity.CostItem{
		VariableValue:    dec("100"),
		VariableUnit:     entity.UnitBox,
		VariableUnitKg:   dec("10"),
		FixedPerShipment: dec("50"),
	}
	raw := pricing.ItemCostPerKgRaw(item, dec("1000"), 2)
	// 100/10 por la caja + 50×2/1000 amortizado = 10.1
	assertDecEq(t, dec("10.1"), raw, "caja de 10kg a $100 + fijo amortizado")
}

func TestItemCostPerKgRaw_CajaSinUnitKgAportaCero(t *testing.T) {
	item := entity.CostItem{VariableValue: dec("100"), VariableUnit: entity.UnitBox}
	raw := pricing.ItemCostPerKgRaw(item, dec("1000"), 1)
	assert.True(t, raw.IsZero(), "sin kg por caja el componente variable es 0")
}

func TestItemCostPerKgRaw_CargaAmortizadaSobreVolumen(t *testing.T) {
	item := entity.CostItem{VariableValue: dec("500"), VariableUnit: entity.UnitLoad}
	raw := pricing.ItemCostPerKgRaw(item, dec("1000"), 1)
	assertDecEq(t, dec("0.5"), raw, "carga de $500 sobre 1000 kg")

	raw = pricing.ItemCostPerKgRaw(item, decimal.Zero, 1)
	assert.True(t, raw.IsZero(), "volumen 0 degrada a 0, nunca divide")
}

func TestItemCostPerKgRaw_UnidadesPorcentualesAportanCero(t *testing.T) {
	for _, unit := range []entity.CostUnit{entity.UnitPctCost, entity.UnitPctPrice} {
		item := entity.CostItem{VariableValue: dec("15"), VariableUnit: unit}
		raw := pricing.ItemCostPerKgRaw(item, dec("1000"), 1)
		assert.True(t, raw.IsZero(), "unidad %s reservada debe aportar 0", unit)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Moneda
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_ItemArsSinTipoDeCambioAportaCero(t *testing.T) {
	in := exportInput()
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in.Layers, entity.LayerTransport, kgItem("Flete a Bs As", "900", entity.CurrencyARS))
	// ExchangeRate queda en 0

	res := pricing.Recompute(in)

	assertDecEq(t, dec("4"), res.TotalCostPerKg, "el ítem ARS sin TC aporta exactamente 0")
	require.True(t, hasWarning(res.Warnings, pricing.WarnForeignNoRate),
		"debe avisar que hay ítems en moneda extranjera sin tipo de cambio")
}

func TestRecompute_ConversionArsAUsd(t *testing.T) {
	in := exportInput()
	in.ExchangeRate = dec("1000")
	addItem(in.Layers, entity.LayerTransport, kgItem("Flete", "900", entity.CurrencyARS))

	res := pricing.Recompute(in)
	assertDecEq(t, dec("0.9"), res.TotalCostPerKg, "900 ARS/kg a TC 1000 son 0.9 USD/kg")
}

func TestRecompute_LocalConvierteUsdAArs(t *testing.T) {
	in := pricing.Input{
		Type:         entity.QuoteTypeLocal,
		TradeTerm:    entity.TermRetiroPlanta,
		Layers:       entity.LocalLayers(),
		VolumeKg:     dec("500"),
		NumShipments: 1,
		ExchangeRate: dec("1000"),
		LockMode:     entity.LockMargin,
	}
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "3000", entity.CurrencyARS))
	addItem(in.Layers, entity.LayerPackaging, kgItem("Envase", "2", entity.CurrencyUSD))

	res := pricing.Recompute(in)
	// 3000 ARS + 2 USD × 1000 = 5000 ARS
	assertDecEq(t, dec("5000"), res.TotalCostPerKg, "liquidación local en ARS multiplica los ítems USD por el TC")
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregación por capas y rendimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_MateriaPrimaAjustadaPorRendimiento(t *testing.T) {
	in := exportInput()
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in.Layers, entity.LayerProcessing, procItem("Proceso", "50"))

	res := pricing.Recompute(in)

	mp := layerByID(res.Layers, entity.LayerRawMaterial)
	assertDecEq(t, dec("8"), mp.TotalPerKg, "4/kg con rendimiento 50% cuesta 8/kg de producto terminado")
	assertDecEq(t, dec("8"), mp.Items[0].CostPerKgCalc, "el cache por ítem guarda el valor ajustado")
}

func TestRecompute_SinRendimientoNoAjusta(t *testing.T) {
	in := exportInput()
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))

	res := pricing.Recompute(in)
	mp := layerByID(res.Layers, entity.LayerRawMaterial)
	assertDecEq(t, dec("4"), mp.TotalPerKg, "rendimiento 1 deja el costo crudo intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Comisión y precio
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_EscenarioCompleto(t *testing.T) {
	in := exportInput()
	in.MarginPct = dec("20")
	in.Commission = entity.Commission{Pct: dec("5"), Base: entity.BaseCost}
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in.Layers, entity.LayerProcessing, procItem("Proceso", "50"))

	res := pricing.Recompute(in)

	assertDecEq(t, dec("0.5"), res.EffectiveYield, "rendimiento efectivo 50%")
	assertDecEq(t, dec("8"), res.TotalCostPerKg, "materia prima 4/0.5")
	assertDecEq(t, dec("0.4"), res.CommPerKg, "comisión 5% sobre costo")
	assertDecEq(t, dec("10.08"), res.PricePerKg, "(8+0.4)×1.2")
	assertDecEq(t, dec("10.08").Div(dec("2.20462")), res.PricePerLb, "precio por libra con la constante fija")
}

func TestResolveCommission_BasePlantExit(t *testing.T) {
	comm := entity.Commission{Pct: dec("10"), Base: entity.BasePlantExit}
	commPerKg, pricePerKg := pricing.ResolveCommission(
		dec("10"), comm, dec("1000"), 1, dec("20"), dec("8"))

	// plantExitPrice = 8×1.2 = 9.6; comm = 0.96; price = 10×1.2 + 0.96 = 12.96
	assertDecEq(t, dec("0.96"), commPerKg, "comisión sobre precio salida planta")
	assertDecEq(t, dec("12.96"), pricePerKg, "precio con comisión plant_exit")
}

func TestResolveCommission_BasePrecioFinal(t *testing.T) {
	comm := entity.Commission{Pct: dec("10"), Base: entity.BasePrice}
	commPerKg, pricePerKg := pricing.ResolveCommission(
		dec("10"), comm, dec("1000"), 1, dec("20"), dec("8"))

	// price = 10×1.2 / 0.9 = 13.333...; comm = price×0.1
	expectedPrice := dec("12").Div(dec("0.9"))
	assertDecEq(t, expectedPrice, pricePerKg, "precio despejado con comisión sobre precio")
	assertDecEq(t, expectedPrice.Mul(dec("0.1")), commPerKg, "comisión 10% del precio final")
}

func TestResolveCommission_FijosAmortizados(t *testing.T) {
	comm := entity.Commission{
		Base:             entity.BaseCost,
		FixedPerKg:       dec("0.05"),
		FixedPerShipment: dec("100"),
		FixedPerQuote:    dec("50"),
	}
	commPerKg, _ := pricing.ResolveCommission(dec("10"), comm, dec("1000"), 2, decimal.Zero, dec("10"))
	// 0.05 + (100×2+50)/1000 = 0.3
	assertDecEq(t, dec("0.3"), commPerKg, "fijos por kg + amortizados por embarque y cotización")
}

func TestResolveCommission_Pct100SobrePrecioDegradaACero(t *testing.T) {
	comm := entity.Commission{Pct: dec("100"), Base: entity.BasePrice}
	commPerKg, pricePerKg := pricing.ResolveCommission(dec("10"), comm, dec("1000"), 1, dec("20"), dec("10"))
	assert.True(t, commPerKg.IsZero(), "pct=100 sobre precio no debe dividir por cero")
	assert.True(t, pricePerKg.IsZero(), "el precio degrada a 0, nunca a infinito")

	in := exportInput()
	in.Commission = comm
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	res := pricing.Recompute(in)
	assert.True(t, hasWarning(res.Warnings, pricing.WarnCommissionPct100),
		"el degradado a 0 debe venir acompañado de advertencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Solver de margen (lock de precio)
//
// Ley de ida y vuelta: para cualquier base, el margen despejado del precio
// calculado debe recuperar el margen original.
// ──────────────────────────────────────────────────────────────────────────────

func TestSolveMargin_IdaYVueltaPorBase(t *testing.T) {
	cases := []struct {
		name string
		comm entity.Commission
	}{
		{"base costo", entity.Commission{Pct: dec("5"), Base: entity.BaseCost}},
		{"base salida planta", entity.Commission{Pct: dec("8"), Base: entity.BasePlantExit}},
		{"base precio final", entity.Commission{Pct: dec("12"), Base: entity.BasePrice}},
		{"con fijos", entity.Commission{Pct: dec("5"), Base: entity.BaseCost, FixedPerKg: dec("0.2"), FixedPerShipment: dec("30")}},
	}

	totalCost := dec("8")
	plantExit := dec("6.5")
	volume := dec("1000")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, margin := range []string{"0", "12.5", "20", "45"} {
				m := dec(margin)
				_, price := pricing.ResolveCommission(totalCost, tc.comm, volume, 2, m, plantExit)
				require.True(t, price.IsPositive(), "precio directo debe ser positivo")

				solved, ok := pricing.SolveMargin(price, totalCost, tc.comm, volume, 2, plantExit)
				require.True(t, ok, "el despeje debe ser resoluble")
				assertDecEq(t, m, solved, "margen recuperado para margen "+margin)
			}
		})
	}
}

func TestSolveMargin_NegativoSePisaACero(t *testing.T) {
	comm := entity.Commission{Base: entity.BaseCost}
	// Precio objetivo por debajo del costo: margen matemático negativo.
	solved, ok := pricing.SolveMargin(dec("7"), dec("8"), comm, dec("1000"), 1, dec("8"))
	require.True(t, ok)
	assert.True(t, solved.IsZero(), "margen negativo alcanzable se pisa a 0")
}

func TestSolveMargin_InvalidoConservaMargenAnterior(t *testing.T) {
	comm := entity.Commission{Base: entity.BaseCost}

	// Por debajo de −99%: inválido, se ignora.
	_, ok := pricing.SolveMargin(dec("0.001"), dec("8"), comm, dec("1000"), 1, dec("8"))
	assert.False(t, ok, "despeje por debajo de −99% es inválido")

	// Costo cero con base precio: no resoluble.
	_, ok = pricing.SolveMargin(dec("10"), decimal.Zero, entity.Commission{Base: entity.BasePrice}, dec("1000"), 1, decimal.Zero)
	assert.False(t, ok, "sin costo no hay margen que despejar")

	in := exportInput()
	in.LockMode = entity.LockPrice
	in.MarginPct = dec("20")
	in.TargetPrice = dec("0.001") // inalcanzable: cae por debajo de −99%
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))

	res := pricing.Recompute(in)
	assertDecEq(t, dec("20"), res.MarginPct, "el margen anterior se conserva ante un despeje inválido")
}

func TestRecompute_LockPrecioDespejaMargen(t *testing.T) {
	in := exportInput()
	in.LockMode = entity.LockPrice
	in.TargetPrice = dec("10")
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "8", entity.CurrencyUSD))

	res := pricing.Recompute(in)
	assertDecEq(t, dec("25"), res.MarginPct, "precio 10 sobre costo 8 sin comisión es margen 25%")
	assertDecEq(t, dec("10"), res.PricePerKg, "el precio recalculado coincide con el objetivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Gating por término comercial
// ──────────────────────────────────────────────────────────────────────────────

func TestRecompute_EtapasExcluyenCapasNoAlcanzadas(t *testing.T) {
	build := func(term entity.TradeTerm) pricing.Input {
		in := pricing.Input{
			Type:         entity.QuoteTypeExport,
			StagedTerms:  true,
			TradeTerm:    term,
			Layers:       entity.StagedExportLayers(),
			VolumeKg:     dec("1000"),
			NumShipments: 1,
			LockMode:     entity.LockMargin,
		}
		addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
		addItem(in.Layers, entity.LayerFOB, kgItem("Flete interno", "0.5", entity.CurrencyUSD))
		addItem(in.Layers, entity.LayerCIF, kgItem("Flete marítimo", "0.8", entity.CurrencyUSD))
		addItem(in.Layers, entity.LayerDDP, kgItem("Aranceles", "1.2", entity.CurrencyUSD))
		return in
	}

	exw := pricing.Recompute(build(entity.TermEXW))
	assertDecEq(t, dec("4"), exw.TotalCostPerKg, "EXW excluye todas las capas con etapa")
	// La capa excluida igual muestra su propio total.
	assertDecEq(t, dec("0.5"), layerByID(exw.Layers, entity.LayerFOB).TotalPerKg,
		"la capa excluida conserva su total visible")

	fob := pricing.Recompute(build(entity.TermFOB))
	assertDecEq(t, dec("4.5"), fob.TotalCostPerKg, "FOB suma solo hasta su etapa")

	ddp := pricing.Recompute(build(entity.TermDDP))
	assertDecEq(t, dec("6.5"), ddp.TotalCostPerKg, "DDP incluye todas las etapas")
}

func TestRecompute_IncotermClasicoSumaTodo(t *testing.T) {
	in := exportInput()
	in.TradeTerm = entity.TermEXW
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in.Layers, entity.LayerTransport, kgItem("Flete", "0.5", entity.CurrencyUSD))

	res := pricing.Recompute(in)
	// El modelo clásico no filtra el total: el gating existe solo en el staged.
	assertDecEq(t, dec("4.5"), res.TotalCostPerKg, "modelo clásico suma todas las capas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobertura y advertencias
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckCoverage_CapaExigidaVacia(t *testing.T) {
	in := exportInput()
	in.TradeTerm = entity.TermFOB
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	// transport y export quedan vacías

	res := pricing.Recompute(in)
	var missing []entity.LayerID
	for _, w := range res.Warnings {
		if w.Code == pricing.WarnLayerNotCovered {
			missing = append(missing, w.Layer)
		}
	}
	assert.ElementsMatch(t, []entity.LayerID{entity.LayerTransport, entity.LayerExport}, missing,
		"FOB exige transporte interno y costos de exportación")
	assert.True(t, res.TotalCostPerKg.IsPositive(), "la cobertura faltante no anula el precio")
}

func TestCheckCoverage_RetiroPlantaNoExigeNada(t *testing.T) {
	policy := pricing.LocalDeliveryPolicy{}
	assert.Empty(t, policy.RequiredLayers(entity.TermRetiroPlanta))
	assert.Equal(t, []entity.LayerID{entity.LayerDistribution}, policy.RequiredLayers(entity.TermPuestoCABA))
}

func TestCheckSanity_Advertencias(t *testing.T) {
	in := exportInput()
	in.MarginPct = dec("150")
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	// sin ítems de proceso: rendimiento queda en 1 con MP cargada

	res := pricing.Recompute(in)
	assert.True(t, hasWarning(res.Warnings, pricing.WarnNoProcessing), "debe avisar proceso vacío")
	assert.True(t, hasWarning(res.Warnings, pricing.WarnYieldNotApplied), "debe avisar rendimiento sin ajustar")
	assert.True(t, hasWarning(res.Warnings, pricing.WarnMarginTooHigh), "margen >100%% es sospechoso")
}

func TestCheckSanity_DesvioDeRendimiento(t *testing.T) {
	in := exportInput()
	in.ProductYieldPct = dec("50")
	addItem(in.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in.Layers, entity.LayerProcessing, procItem("Proceso", "80"))

	res := pricing.Recompute(in)
	assert.True(t, hasWarning(res.Warnings, pricing.WarnYieldDeviation),
		"80%% contra standard 50%% se desvía más del 10%%")

	in2 := exportInput()
	in2.ProductYieldPct = dec("50")
	addItem(in2.Layers, entity.LayerRawMaterial, kgItem("Pescado", "4", entity.CurrencyUSD))
	addItem(in2.Layers, entity.LayerProcessing, procItem("Proceso", "52"))
	res2 := pricing.Recompute(in2)
	assert.False(t, hasWarning(res2.Warnings, pricing.WarnYieldDeviation),
		"52%% contra 50%% está dentro de la tolerancia del 10%%")
}

func TestRecompute_ChecklistDeObligatorios(t *testing.T) {
	in := exportInput()
	for _, mi := range entity.MandatoryItems() {
		addItem(in.Layers, mi.Layer, entity.BuildMandatoryItem(mi, entity.QuoteTypeExport))
	}
	res := pricing.Recompute(in)
	assert.Contains(t, res.MandatoryMissing, "Pescado", "obligatorios en cero figuran como faltantes")

	// Cargar valores en todos los obligatorios salvo "Otros" (opcional).
	in2 := exportInput()
	for _, mi := range entity.MandatoryItems() {
		item := entity.BuildMandatoryItem(mi, entity.QuoteTypeExport)
		item.VariableValue = dec("1")
		addItem(in2.Layers, mi.Layer, item)
	}
	res2 := pricing.Recompute(in2)
	assert.Empty(t, res2.MandatoryMissing, "con valores cargados no queda nada pendiente")
}
