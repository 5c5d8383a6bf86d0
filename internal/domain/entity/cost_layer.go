package entity

import "github.com/shopspring/decimal"

// LayerID identifica una capa de costo.
type LayerID string

const (
	LayerRawMaterial  LayerID = "raw_material"
	LayerProcessing   LayerID = "processing"
	LayerPackaging    LayerID = "packaging"
	LayerTransport    LayerID = "transport"
	LayerExport       LayerID = "export"
	LayerDistribution LayerID = "distribution"
	LayerOther        LayerID = "other"

	// Capas incrementales del modelo por etapas (reemplazan transport+export).
	LayerFOB LayerID = "fob"
	LayerCIF LayerID = "cif"
	LayerDDP LayerID = "ddp"
)

// Stage etapa incremental de Incoterm a la que pertenece una capa.
// Vacío = la capa se incluye siempre.
type Stage string

const (
	StageEXW Stage = "EXW"
	StageFOB Stage = "FOB"
	StageCIF Stage = "CIF"
	StageDDP Stage = "DDP"
)

// CostLayer agrupa ítems de costo bajo un concepto. applies_yield solo es
// true en raw_material: su costo se divide por el rendimiento efectivo.
type CostLayer struct {
	LayerID      LayerID         `json:"layer_id"`
	LayerName    string          `json:"layer_name"`
	AppliesYield bool            `json:"applies_yield"`
	Stage        Stage           `json:"stage,omitempty"`
	Items        []CostItem      `json:"items"`
	TotalPerKg   decimal.Decimal `json:"total_per_kg"`
}

// ExportLayers capas de costo del modelo clásico de exportación, en orden.
func ExportLayers() []CostLayer {
	return []CostLayer{
		{LayerID: LayerRawMaterial, LayerName: "Materia Prima", AppliesYield: true},
		{LayerID: LayerProcessing, LayerName: "Proceso en Planta"},
		{LayerID: LayerPackaging, LayerName: "Materiales y Embalaje"},
		{LayerID: LayerTransport, LayerName: "Transporte Interno"},
		{LayerID: LayerExport, LayerName: "Costos de Exportación"},
		{LayerID: LayerOther, LayerName: "Otros"},
	}
}

// StagedExportLayers capas del modelo incremental EXW→FOB→CIF→DDP. Las capas
// con Stage solo suman al total cuando el Incoterm elegido alcanza su etapa.
func StagedExportLayers() []CostLayer {
	return []CostLayer{
		{LayerID: LayerRawMaterial, LayerName: "Materia Prima", AppliesYield: true},
		{LayerID: LayerProcessing, LayerName: "Proceso en Planta"},
		{LayerID: LayerPackaging, LayerName: "Materiales y Embalaje"},
		{LayerID: LayerFOB, LayerName: "Hasta FOB (transporte + exportación)", Stage: StageFOB},
		{LayerID: LayerCIF, LayerName: "Flete y seguro internacional", Stage: StageCIF},
		{LayerID: LayerDDP, LayerName: "Aranceles y entrega en destino", Stage: StageDDP},
		{LayerID: LayerOther, LayerName: "Otros"},
	}
}

// LocalLayers capas del mercado local: distribution reemplaza transport+export.
func LocalLayers() []CostLayer {
	return []CostLayer{
		{LayerID: LayerRawMaterial, LayerName: "Materia Prima", AppliesYield: true},
		{LayerID: LayerProcessing, LayerName: "Proceso en Planta"},
		{LayerID: LayerPackaging, LayerName: "Materiales y Embalaje"},
		{LayerID: LayerDistribution, LayerName: "Distribución"},
		{LayerID: LayerOther, LayerName: "Otros"},
	}
}

// MandatoryItem concepto obligatorio que toda cotización nueva trae pre-cargado.
// Nunca se elimina, solo se edita.
type MandatoryItem struct {
	ID       string
	Layer    LayerID
	Name     string
	HasYield bool
}

// MandatoryItems catálogo de conceptos obligatorios, uno por capa requerida.
func MandatoryItems() []MandatoryItem {
	return []MandatoryItem{
		{ID: "pescado", Layer: LayerRawMaterial, Name: "Pescado"},
		{ID: "proceso", Layer: LayerProcessing, Name: "Proceso", HasYield: true},
		{ID: "mo_empaque", Layer: LayerProcessing, Name: "MO Empaque"},
		{ID: "envase_primario", Layer: LayerPackaging, Name: "Envase primario"},
		{ID: "envase_sec", Layer: LayerPackaging, Name: "Envase secundario"},
		{ID: "etiquetas", Layer: LayerPackaging, Name: "Etiquetas"},
		{ID: "otros", Layer: LayerOther, Name: "Otros"},
	}
}

// BuildMandatoryItem arma el CostItem inicial de un concepto obligatorio con
// los defaults según tipo de cotización: local cotiza en ARS y el embalaje
// local suele cargarse por caja de 10 kg.
func BuildMandatoryItem(mi MandatoryItem, quoteType QuoteType) CostItem {
	item := CostItem{
		Name:         mi.Name,
		Source:       SourceManual,
		Currency:     CurrencyUSD,
		VariableUnit: UnitKg,
		Mandatory:    true,
		MandatoryID:  mi.ID,
	}
	if quoteType == QuoteTypeLocal {
		item.Currency = CurrencyARS
		if mi.Layer == LayerPackaging {
			item.VariableUnit = UnitBox
			item.VariableUnitKg = decimal.NewFromInt(10)
		}
	}
	return item
}
