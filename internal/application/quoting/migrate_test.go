package quoting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manilapatagonia/cotizador-api/internal/application/quoting"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

func findItem(layers []entity.CostLayer, layerID entity.LayerID, mandatoryID string) *entity.CostItem {
	for i := range layers {
		if layers[i].LayerID != layerID {
			continue
		}
		for j := range layers[i].Items {
			if layers[i].Items[j].MandatoryID == mandatoryID {
				return &layers[i].Items[j]
			}
		}
	}
	return nil
}

func TestEnsureMandatoryItems_SiembraEnCapasVacias(t *testing.T) {
	layers := quoting.EnsureMandatoryItems(entity.ExportLayers(), entity.QuoteTypeExport)

	for _, mi := range entity.MandatoryItems() {
		item := findItem(layers, mi.Layer, mi.ID)
		require.NotNil(t, item, "falta el obligatorio %q en %s", mi.ID, mi.Layer)
		assert.True(t, item.Mandatory)
		assert.Equal(t, mi.Name, item.Name)
		assert.Equal(t, entity.CurrencyUSD, item.Currency, "exportación siembra en USD")
	}
}

func TestEnsureMandatoryItems_DefaultsLocales(t *testing.T) {
	layers := quoting.EnsureMandatoryItems(entity.LocalLayers(), entity.QuoteTypeLocal)

	pescado := findItem(layers, entity.LayerRawMaterial, "pescado")
	require.NotNil(t, pescado)
	assert.Equal(t, entity.CurrencyARS, pescado.Currency, "local siembra en ARS")

	envase := findItem(layers, entity.LayerPackaging, "envase_primario")
	require.NotNil(t, envase)
	assert.Equal(t, entity.UnitBox, envase.VariableUnit, "el embalaje local se carga por caja")
	assert.True(t, envase.VariableUnitKg.Equal(decimal.NewFromInt(10)), "caja default de 10 kg")
}

func TestEnsureMandatoryItems_DocumentoLegadoMatcheaPorNombre(t *testing.T) {
	layers := entity.ExportLayers()
	// Documento viejo: el ítem existe con valores cargados pero sin mandatory_id.
	for i := range layers {
		if layers[i].LayerID == entity.LayerRawMaterial {
			layers[i].Items = []entity.CostItem{{
				Name:          "pescado", // casing distinto a propósito
				VariableValue: decimal.NewFromInt(4),
				VariableUnit:  entity.UnitKg,
				Currency:      entity.CurrencyUSD,
			}}
		}
	}

	migrated := quoting.EnsureMandatoryItems(layers, entity.QuoteTypeExport)

	item := findItem(migrated, entity.LayerRawMaterial, "pescado")
	require.NotNil(t, item, "el ítem legado debe quedar con mandatory_id estampado")
	assert.True(t, item.Mandatory)
	assert.True(t, item.VariableValue.Equal(decimal.NewFromInt(4)),
		"la migración conserva los valores cargados, no los pisa con el template")

	var rawItems int
	for _, l := range migrated {
		if l.LayerID == entity.LayerRawMaterial {
			rawItems = len(l.Items)
		}
	}
	assert.Equal(t, 1, rawItems, "no debe duplicar el ítem migrado")
}

func TestEnsureMandatoryItems_Idempotente(t *testing.T) {
	once := quoting.EnsureMandatoryItems(entity.ExportLayers(), entity.QuoteTypeExport)
	twice := quoting.EnsureMandatoryItems(once, entity.QuoteTypeExport)
	assert.Equal(t, once, twice, "correr el upgrade dos veces no cambia nada")
}
