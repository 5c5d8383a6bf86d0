package pricing

import "github.com/manilapatagonia/cotizador-api/internal/domain/entity"

// TradeTermPolicy define qué capas exige y qué capas suma un término
// comercial. Las tres variantes (Incoterm clásico, Incoterm por etapas y
// entrega local) comparten el agregador y el solver a través de esta interfaz.
type TradeTermPolicy interface {
	// RequiredLayers capas que el vendedor debe cubrir para el término dado.
	// Materia prima, proceso y embalaje son siempre del vendedor; acá solo
	// van las capas variables (flete, exportación, distribución).
	RequiredLayers(term entity.TradeTerm) []entity.LayerID
	// Includes indica si la capa suma al costo total bajo el término dado.
	Includes(layer entity.CostLayer, term entity.TradeTerm) bool
}

// ExportIncotermPolicy modelo clásico: cada Incoterm exige un conjunto fijo
// de capas; todas las capas siempre suman al total.
type ExportIncotermPolicy struct{}

var incotermRequired = map[entity.TradeTerm][]entity.LayerID{
	entity.TermEXW: {},
	entity.TermFCA: {entity.LayerTransport},
	entity.TermFOB: {entity.LayerTransport, entity.LayerExport},
	entity.TermCFR: {entity.LayerTransport, entity.LayerExport},
	entity.TermCIF: {entity.LayerTransport, entity.LayerExport},
	entity.TermDDP: {entity.LayerTransport, entity.LayerExport},
}

func (ExportIncotermPolicy) RequiredLayers(term entity.TradeTerm) []entity.LayerID {
	return incotermRequired[term]
}

func (ExportIncotermPolicy) Includes(entity.CostLayer, entity.TradeTerm) bool {
	return true
}

// StagedIncotermPolicy modelo incremental EXW ⊂ FOB ⊂ CIF ⊂ DDP: una capa
// etiquetada con etapa solo suma (y solo se exige) cuando el Incoterm elegido
// alcanza esa etapa. Capas sin etiqueta suman siempre.
type StagedIncotermPolicy struct{}

var stageOrder = map[entity.Stage]int{
	entity.StageEXW: 0,
	entity.StageFOB: 1,
	entity.StageCIF: 2,
	entity.StageDDP: 3,
}

func stageReached(layerStage entity.Stage, term entity.TradeTerm) bool {
	if layerStage == "" {
		return true
	}
	termRank, ok := stageOrder[entity.Stage(term)]
	if !ok {
		return false
	}
	return stageOrder[layerStage] <= termRank
}

func (StagedIncotermPolicy) RequiredLayers(term entity.TradeTerm) []entity.LayerID {
	var required []entity.LayerID
	for _, l := range entity.StagedExportLayers() {
		if l.Stage != "" && stageReached(l.Stage, term) {
			required = append(required, l.LayerID)
		}
	}
	return required
}

func (StagedIncotermPolicy) Includes(layer entity.CostLayer, term entity.TradeTerm) bool {
	return stageReached(layer.Stage, term)
}

// LocalDeliveryPolicy condiciones de entrega del mercado local: retiro en
// planta no exige nada, cualquier entrega exige la capa de distribución.
type LocalDeliveryPolicy struct{}

func (LocalDeliveryPolicy) RequiredLayers(term entity.TradeTerm) []entity.LayerID {
	if term == "" || term == entity.TermRetiroPlanta {
		return nil
	}
	return []entity.LayerID{entity.LayerDistribution}
}

func (LocalDeliveryPolicy) Includes(entity.CostLayer, entity.TradeTerm) bool {
	return true
}

// PolicyFor devuelve la política según tipo de cotización y variante.
func PolicyFor(quoteType entity.QuoteType, staged bool) TradeTermPolicy {
	if quoteType == entity.QuoteTypeLocal {
		return LocalDeliveryPolicy{}
	}
	if staged {
		return StagedIncotermPolicy{}
	}
	return ExportIncotermPolicy{}
}
